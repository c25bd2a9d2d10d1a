package bursar

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that no object in the source bucket matched the
// job's key prefix.
type NotFoundError struct {
	Bucket string
	Prefix string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no files found in bucket %q with prefix %q", e.Bucket, e.Prefix)
}

// AmbiguousMatchError indicates that more than one object matched the job's
// key prefix. The job id is supposed to be unique, so this is never resolved
// by picking one.
type AmbiguousMatchError struct {
	Bucket string
	Prefix string
	Keys   []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple files found in bucket %q with prefix %q: %s",
		e.Bucket, e.Prefix, strings.Join(e.Keys, ", "))
}

// UnknownFeeTypeError indicates a fine/fee type code outside the billing
// catalog. Only the types configured in the Alma bursar integration should
// appear in an export, so this usually means the integration config changed
// before the catalog here was extended. Callers recover from it per record.
type UnknownFeeTypeError struct {
	Code          string
	TransactionID string
}

func (e *UnknownFeeTypeError) Error() string {
	return fmt.Sprintf("unrecognized fine fee type: %s", e.Code)
}

// IncompleteRecordError indicates a record that mapped to a row with one or
// more empty columns. A structurally incomplete export must not produce a
// partial billing file, so this aborts the whole run.
type IncompleteRecordError struct {
	PatronID string
	Columns  []string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("one or more required values are missing from the export file (patron %q, columns: %s)",
		e.PatronID, strings.Join(e.Columns, ", "))
}
