package bursar

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary is the reconciliation result for one run: how many charges were
// billed and the exact total. It is returned to the caller, never persisted.
type Summary struct {
	RecordCount int
	TotalAmount decimal.Decimal
}

// Summarize computes the reconciliation summary over a finished row set.
// Amounts are summed as exact decimals and rounded to 2 places only at the
// end, so the total cannot drift with record order the way sequential float
// addition can. Idempotent: the same rows always produce the same summary.
func Summarize(rows []Row) (Summary, error) {
	total := decimal.Zero
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return Summary{}, fmt.Errorf("invalid amount %q: %w", row.Amount, err)
		}
		total = total.Add(amount)
	}
	return Summary{
		RecordCount: len(rows),
		TotalAmount: total.Round(2),
	}, nil
}
