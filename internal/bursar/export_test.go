package bursar

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

var fixtureAsOf = time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestTransformExportGolden(t *testing.T) {
	transformer := NewTransformer(slog.Default())
	rows, err := transformer.TransformExport(readFixture(t, "export.xml"), fixtureAsOf)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	got := EncodeCSV(rows)
	want := readFixture(t, "export.csv")
	if !bytes.Equal(got, want) {
		t.Fatalf("csv does not match golden file:\n got:\n%s\nwant:\n%s", got, want)
	}

	summary, err := Summarize(rows)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.RecordCount != 5 {
		t.Fatalf("expected 5 records, got %d", summary.RecordCount)
	}
	if total := summary.TotalAmount.StringFixed(2); total != "579.72" {
		t.Fatalf("expected total 579.72, got %s", total)
	}
}

func TestTransformExportSkipsUnknownFeeType(t *testing.T) {
	doc := strings.Replace(string(readFixture(t, "export.xml")), "OVERDUEFINE", "foo", 1)

	var logBuf bytes.Buffer
	transformer := NewTransformer(slog.New(slog.NewTextHandler(&logBuf, nil)))
	rows, err := transformer.TransformExport([]byte(doc), fixtureAsOf)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected the unknown-type record to be skipped, got %d rows", len(rows))
	}
	logged := logBuf.String()
	if !strings.Contains(logged, "15216075630006761") || !strings.Contains(logged, "foo") {
		t.Fatalf("expected skip diagnostic with transaction id and code, got: %s", logged)
	}
}

func TestTransformExportMissingAmountAborts(t *testing.T) {
	doc := strings.Replace(string(readFixture(t, "export.xml")), "100.00", "", 1)

	transformer := NewTransformer(slog.Default())
	rows, err := transformer.TransformExport([]byte(doc), fixtureAsOf)
	var incomplete *IncompleteRecordError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteRecordError, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows on abort, got %d", len(rows))
	}
}

func TestTransformExportMalformedXML(t *testing.T) {
	transformer := NewTransformer(slog.Default())
	if _, err := transformer.TransformExport([]byte("<unclosed"), fixtureAsOf); err == nil {
		t.Fatalf("expected malformed xml to fail")
	}
}

func TestTransformExportPreservesDocumentOrder(t *testing.T) {
	transformer := NewTransformer(slog.Default())
	rows, err := transformer.TransformExport(readFixture(t, "export.xml"), fixtureAsOf)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	transactionsInOrder := []string{"100.00", "200.00", "150.50", "99.50", "29.72"}
	for i, amount := range transactionsInOrder {
		if rows[i].Amount != amount {
			t.Fatalf("row %d amount = %q, want %q", i, rows[i].Amount, amount)
		}
	}
}

func TestEncodeCSVHeaderOnly(t *testing.T) {
	got := string(EncodeCSV(nil))
	want := `"MITID","STUDENTNAME","DETAILCODE","DESCRIPTION","AMOUNT","EFFECTIVEDATE","BILLINGTERM"` + "\n"
	if got != want {
		t.Fatalf("expected header row for empty table, got %q", got)
	}
}

func TestEncodeCSVEscapesQuotes(t *testing.T) {
	rows := []Row{{
		MITID:       "1",
		StudentName: `Smith, Avery "AJ"`,
	}}
	got := string(EncodeCSV(rows))
	if !strings.Contains(got, `"Smith, Avery ""AJ"""`) {
		t.Fatalf("expected embedded quotes to be doubled, got %q", got)
	}
}
