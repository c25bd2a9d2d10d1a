package models

// These structs define the JSON payloads for HTTP requests and responses
// between the scheduler that watches Alma job completion and the transfer
// function.

// TransferRequest is the input for the bursar-transfer function. AsOfDate
// (YYYY-MM-DD) defaults to the invocation date; ExecutionID is generated
// when absent and only used for log correlation.
type TransferRequest struct {
	JobID       string `json:"jobId"`
	AsOfDate    string `json:"asOfDate,omitempty"`
	ExecutionID string `json:"executionId,omitempty"`
}

// TransferResponse is the output of the bursar-transfer function: where the
// pickup file landed plus the reconciliation totals for the run.
type TransferResponse struct {
	TargetFile   string  `json:"target_file"`
	RecordCount  int     `json:"record_count"`
	TotalCharges float64 `json:"total_charges"`
}

// GCSEvent is the payload of a GCS object-finalize event, used by the
// storage-triggered entrypoint.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}
