package bursar

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeLister struct {
	keys map[string][]string
	err  error
}

func (f *fakeLister) ListKeys(_ context.Context, bucket, prefix string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.keys[bucket+"/"+prefix], nil
}

func TestResolveSourceKeySingleMatch(t *testing.T) {
	lister := &fakeLister{keys: map[string][]string{
		"alma/bursar_export_to_prod-1234": {"bursar_export_to_prod-1234-5678.xml"},
	}}
	key, err := ResolveSourceKey(context.Background(), lister, "alma", "bursar_export_to_prod-1234")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if key != "bursar_export_to_prod-1234-5678.xml" {
		t.Fatalf("unexpected key: %q", key)
	}
}

func TestResolveSourceKeyNoMatch(t *testing.T) {
	lister := &fakeLister{}
	_, err := ResolveSourceKey(context.Background(), lister, "alma", "nope")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if notFound.Bucket != "alma" || notFound.Prefix != "nope" {
		t.Fatalf("error should carry bucket and prefix: %+v", notFound)
	}
}

func TestResolveSourceKeyMultipleMatches(t *testing.T) {
	lister := &fakeLister{keys: map[string][]string{
		"alma/bursar_export_to_prod-1234": {
			"bursar_export_to_prod-1234-5678.xml",
			"bursar_export_to_prod-1234-abcd.xml",
		},
	}}
	_, err := ResolveSourceKey(context.Background(), lister, "alma", "bursar_export_to_prod-1234")
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected *AmbiguousMatchError, got %v", err)
	}
	if len(ambiguous.Keys) != 2 {
		t.Fatalf("expected both candidate keys, got %v", ambiguous.Keys)
	}
}

func TestResolveSourceKeyListError(t *testing.T) {
	lister := &fakeLister{err: fmt.Errorf("storage unavailable")}
	if _, err := ResolveSourceKey(context.Background(), lister, "alma", "x"); err == nil {
		t.Fatalf("expected listing error to propagate")
	}
}
