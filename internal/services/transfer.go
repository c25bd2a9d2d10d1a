package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mitlib/bursar-transfer/internal/bursar"
	"github.com/mitlib/bursar-transfer/internal/gcs"
	"github.com/mitlib/bursar-transfer/internal/models"
)

// asOfDateLayout is the request's asOfDate format.
const asOfDateLayout = "2006-01-02"

// TransferConfig holds configuration for the bursar-transfer service.
type TransferConfig struct {
	Workspace    string
	SourceBucket string
	SourcePrefix string
	TargetBucket string
	TargetPrefix string
}

// TransferFunction holds dependencies for the transfer logic.
type TransferFunction struct {
	storageClient *gcs.Client
	policy        bursar.TermPolicy
	config        TransferConfig
}

// NewTransfer creates a new TransferFunction instance from the environment.
// All required configuration is validated here, before any work begins.
func NewTransfer(ctx context.Context) (*TransferFunction, error) {
	workspace := gcs.GetEnv("WORKSPACE", "")
	if workspace == "" {
		return nil, fmt.Errorf("WORKSPACE environment variable must be set")
	}

	config := TransferConfig{
		Workspace:    workspace,
		SourceBucket: gcs.GetEnv("SOURCE_BUCKET", ""),
		SourcePrefix: gcs.GetEnv("SOURCE_PREFIX", ""),
		TargetBucket: gcs.GetEnv("TARGET_BUCKET", ""),
		TargetPrefix: gcs.GetEnv("TARGET_PREFIX", ""),
	}
	if config.SourceBucket == "" || config.SourcePrefix == "" ||
		config.TargetBucket == "" || config.TargetPrefix == "" {
		return nil, fmt.Errorf("SOURCE_BUCKET, SOURCE_PREFIX, TARGET_BUCKET and TARGET_PREFIX must be set")
	}

	if dsn := gcs.GetEnv("SENTRY_DSN", ""); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			Environment:      workspace,
			TracesSampleRate: 1.0,
		}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		slog.Info("Sentry DSN found, exceptions will be sent to Sentry", "environment", workspace)
	} else {
		slog.Info("No Sentry DSN found, exceptions will not be sent to Sentry")
	}

	policy := bursar.DefaultTermPolicy()
	if path := gcs.GetEnv("TERM_POLICY_FILE", ""); path != "" {
		loaded, err := bursar.LoadTermPolicy(path)
		if err != nil {
			return nil, err
		}
		policy = loaded
		slog.Info("Loaded billing term policy override", "path", path)
	}

	storageClient, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &TransferFunction{
		storageClient: storageClient,
		policy:        policy,
		config:        config,
	}, nil
}

// Process handles a job-id-correlated transfer: resolve the one export file
// for the job, convert it, upload the pickup file, and report totals.
func (f *TransferFunction) Process(ctx context.Context, req *models.TransferRequest) (*models.TransferResponse, error) {
	if req.JobID == "" {
		return nil, fmt.Errorf("request is missing the required jobId")
	}

	asOf, err := asOfDate(req.AsOfDate)
	if err != nil {
		return nil, err
	}

	logCtx := slog.With("jobId", req.JobID, "executionId", req.ExecutionID)
	prefix := fmt.Sprintf("%s-%s", f.config.SourcePrefix, req.JobID)
	logCtx.Debug("Resolving bursar export file",
		"bucket", f.config.SourceBucket, "prefix", prefix)

	sourceKey, err := bursar.ResolveSourceKey(ctx, f.storageClient, f.config.SourceBucket, prefix)
	if err != nil {
		logCtx.Error("Failed to resolve export file", "error", err)
		return nil, err
	}

	return f.run(ctx, logCtx, sourceKey, asOf)
}

// ProcessObject handles a storage-triggered transfer: the export file has
// already landed, so resolution is skipped and the object is converted
// directly.
func (f *TransferFunction) ProcessObject(ctx context.Context, event models.GCSEvent) (*models.TransferResponse, error) {
	logCtx := slog.With("bucket", event.Bucket, "object", event.Name)

	if event.Bucket != f.config.SourceBucket {
		return nil, fmt.Errorf("event bucket %q is not the configured source bucket %q",
			event.Bucket, f.config.SourceBucket)
	}
	if !strings.HasPrefix(event.Name, f.config.SourcePrefix) {
		return nil, fmt.Errorf("object %q does not match the source prefix %q",
			event.Name, f.config.SourcePrefix)
	}

	return f.run(ctx, logCtx, event.Name, time.Now())
}

// run is the shared pipeline: fetch, transform, upload, summarize. Any
// error aborts before the pickup file is written.
func (f *TransferFunction) run(ctx context.Context, logCtx *slog.Logger, sourceKey string, asOf time.Time) (*models.TransferResponse, error) {
	exportXML, err := f.storageClient.GetObject(ctx, f.config.SourceBucket, sourceKey)
	if err != nil {
		logCtx.Error("Failed to fetch export file", "error", err, "key", sourceKey)
		return nil, err
	}

	transformer := bursar.NewTransformer(logCtx)
	transformer.Policy = f.policy
	rows, err := transformer.TransformExport(exportXML, asOf)
	if err != nil {
		logCtx.Error("Failed to transform export file", "error", err, "key", sourceKey)
		return nil, err
	}

	targetKey := TargetKey(sourceKey, f.config.SourcePrefix, f.config.TargetPrefix)
	if err := f.storageClient.PutObject(ctx, f.config.TargetBucket, targetKey, bursar.EncodeCSV(rows), "text/csv"); err != nil {
		logCtx.Error("Failed to upload pickup file", "error", err, "key", targetKey)
		return nil, err
	}

	summary, err := bursar.Summarize(rows)
	if err != nil {
		logCtx.Error("Failed to summarize pickup file", "error", err)
		return nil, err
	}

	location := fmt.Sprintf("%s/%s", f.config.TargetBucket, targetKey)
	logCtx.Info("Bursar csv available for download", "location", location,
		"recordCount", summary.RecordCount, "totalCharges", summary.TotalAmount)

	return &models.TransferResponse{
		TargetFile:   location,
		RecordCount:  summary.RecordCount,
		TotalCharges: summary.TotalAmount.InexactFloat64(),
	}, nil
}

// TargetKey derives the pickup file's object key from the export file's:
// the source prefix is swapped for the target prefix and the extension
// changes from .xml to .csv.
func TargetKey(sourceKey, sourcePrefix, targetPrefix string) string {
	key := strings.Replace(sourceKey, sourcePrefix, targetPrefix, 1)
	return strings.TrimSuffix(key, ".xml") + ".csv"
}

func asOfDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	asOf, err := time.Parse(asOfDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid asOfDate %q, expected YYYY-MM-DD: %w", value, err)
	}
	return asOf, nil
}
