package bursar

import "testing"

func rowsWithAmounts(amounts ...string) []Row {
	rows := make([]Row, len(amounts))
	for i, amount := range amounts {
		rows[i] = Row{Amount: amount}
	}
	return rows
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize(rowsWithAmounts("100.00", "200.00", "279.72"))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.RecordCount != 3 {
		t.Fatalf("expected 3 records, got %d", summary.RecordCount)
	}
	if got := summary.TotalAmount.StringFixed(2); got != "579.72" {
		t.Fatalf("expected total 579.72, got %s", got)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	rows := rowsWithAmounts("0.10", "0.20", "0.30")
	first, err := Summarize(rows)
	if err != nil {
		t.Fatalf("first summarize: %v", err)
	}
	second, err := Summarize(rows)
	if err != nil {
		t.Fatalf("second summarize: %v", err)
	}
	if first.RecordCount != second.RecordCount || !first.TotalAmount.Equal(second.TotalAmount) {
		t.Fatalf("summaries differ: %+v vs %+v", first, second)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := Summarize(nil)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.RecordCount != 0 || !summary.TotalAmount.IsZero() {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestSummarizeInvalidAmount(t *testing.T) {
	if _, err := Summarize(rowsWithAmounts("not-a-number")); err == nil {
		t.Fatalf("expected invalid amount to fail")
	}
}
