package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/getsentry/sentry-go"
	"github.com/mitlib/bursar-transfer/internal/models"
	"github.com/mitlib/bursar-transfer/internal/services"
)

var (
	transferInstance *services.TransferFunction
	once             sync.Once
	initErr          error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function. The framework routes GCS
	// object-finalize events here when an Alma export lands.
	functions.CloudEvent("TransferOnExportLanded", transferOnExportLanded)
}

// main is required by the Go Functions Framework.
func main() {}

// transferOnExportLanded is the Cloud Function entry point for the
// storage-triggered variant: the landed object is the export file, so no
// job-id resolution is needed.
func transferOnExportLanded(ctx context.Context, e cloudevents.Event) error {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		transferInstance, initErr = services.NewTransfer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	var gcsEvent models.GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("Failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	res, err := transferInstance.ProcessObject(ctx, gcsEvent)
	if err != nil {
		// The error is already logged with context within ProcessObject.
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		return err
	}

	slog.Info("Transfer complete", "targetFile", res.TargetFile,
		"recordCount", res.RecordCount, "totalCharges", res.TotalCharges)
	return nil
}
