package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
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

	// Register the HTTP function with the framework.
	// "HandleBursarTransfer" is the entry point name configured in GCP.
	functions.HTTP("HandleBursarTransfer", handleBursarTransfer)
}

// main is required by the Go Functions Framework.
func main() {}

// handleBursarTransfer is the HTTP handler for the transfer service.
func handleBursarTransfer(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		transferInstance, initErr = services.NewTransfer(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Could not decode request body", "error", err)
		http.Error(w, "Bad Request: could not parse JSON", http.StatusBadRequest)
		return
	}
	if req.ExecutionID == "" {
		req.ExecutionID = uuid.New().String()
	}

	res, err := transferInstance.Process(r.Context(), &req)
	if err != nil {
		// The specific error is already logged inside the Process method.
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		http.Error(w, "Internal Server Error: processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write response", "error", err)
		http.Error(w, "Internal Server Error: failed to encode response", http.StatusInternalServerError)
	}
}
