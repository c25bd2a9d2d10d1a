package bursar

import "context"

// KeyLister lists object keys in a bucket that begin with a prefix.
// Implemented by the GCS wrapper; tests substitute a fixture.
type KeyLister interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// ResolveSourceKey finds the one export file for a job.
//
// When fines and fees are exported from Alma, the object key takes the form
// [integration profile name]-[alma job id]-[time stamp].xml. The time stamp
// is not knowable from the data available here, so the profile name plus job
// id prefix is the only stable handle. The job id is unique, so exactly one
// key must match: zero fails with *NotFoundError, more than one with
// *AmbiguousMatchError. Ambiguity is never resolved by guessing.
func ResolveSourceKey(ctx context.Context, lister KeyLister, bucket, prefix string) (string, error) {
	keys, err := lister.ListKeys(ctx, bucket, prefix)
	if err != nil {
		return "", err
	}
	switch len(keys) {
	case 0:
		return "", &NotFoundError{Bucket: bucket, Prefix: prefix}
	case 1:
		return keys[0], nil
	default:
		return "", &AmbiguousMatchError{Bucket: bucket, Prefix: prefix, Keys: keys}
	}
}
