package bursar

import (
	"log/slog"
	"time"
)

// DetailCode is the bursar system's classification literal for all library
// charges.
const DetailCode = "ROLH"

// effectiveDateLayout is the bursar system's date format (MM/DD/YYYY).
const effectiveDateLayout = "01/02/2006"

// FineFeeRecord is one charge scanned out of the Alma export, consumed
// immediately by the transformer and discarded.
type FineFeeRecord struct {
	PatronID      string
	PatronName    string
	ItemBarcode   string
	FeeTypeCode   string
	Amount        string
	TransactionID string
}

// Row is one data row of the bursar billing file, columns in file order.
type Row struct {
	MITID         string
	StudentName   string
	DetailCode    string
	Description   string
	Amount        string
	EffectiveDate string
	BillingTerm   string
}

// columns returns the row's values in column order.
func (r Row) columns() []string {
	return []string{
		r.MITID,
		r.StudentName,
		r.DetailCode,
		r.Description,
		r.Amount,
		r.EffectiveDate,
		r.BillingTerm,
	}
}

// Transformer converts Alma fine/fee records into bursar billing rows.
type Transformer struct {
	Catalog FeeTypeCatalog
	Policy  TermPolicy
	Logger  *slog.Logger
}

// NewTransformer returns a Transformer with the default catalog and term
// policy.
func NewTransformer(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		Catalog: DefaultFeeTypeCatalog(),
		Policy:  DefaultTermPolicy(),
		Logger:  logger,
	}
}

// transformRecord maps one record to one row. The as-of date is shared by
// the whole run, so EFFECTIVEDATE and BILLINGTERM are identical on every
// row. An unrecognized fee type fails with *UnknownFeeTypeError carrying
// the bursar transaction id; any empty column after mapping fails with
// *IncompleteRecordError.
func (t *Transformer) transformRecord(rec FineFeeRecord, asOf time.Time) (Row, error) {
	description, err := t.Catalog.Describe(rec.FeeTypeCode, rec.ItemBarcode)
	if err != nil {
		if unknown, ok := err.(*UnknownFeeTypeError); ok {
			unknown.TransactionID = rec.TransactionID
		}
		return Row{}, err
	}

	row := Row{
		MITID:         rec.PatronID,
		StudentName:   rec.PatronName,
		DetailCode:    DetailCode,
		Description:   description,
		Amount:        rec.Amount,
		EffectiveDate: asOf.Format(effectiveDateLayout),
		BillingTerm:   t.Policy.TermFor(asOf),
	}

	var empty []string
	for i, value := range row.columns() {
		if value == "" {
			empty = append(empty, csvHeader[i])
		}
	}
	if len(empty) > 0 {
		return Row{}, &IncompleteRecordError{PatronID: rec.PatronID, Columns: empty}
	}
	return row, nil
}
