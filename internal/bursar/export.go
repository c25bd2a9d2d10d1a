package bursar

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"
)

// patronExport is one userExportedFineFeesList block of the Alma export:
// a patron and the charges attributed to them. Only the fields the billing
// file needs are decoded; everything else in the schema is ignored.
type patronExport struct {
	User struct {
		Value string `xml:"value"`
	} `xml:"user"`
	PatronName string       `xml:"patronName"`
	FineFees   []userFineFee `xml:"finefeeList>userFineFee"`
}

type userFineFee struct {
	ItemBarcode   string `xml:"itemBarcode"`
	FineFeeType   string `xml:"fineFeeType"`
	Sum           string `xml:"compositeSum>sum"`
	TransactionID string `xml:"bursarTransactionId"`
}

// TransformExport converts a full Alma bursar export document into billing
// rows, in document order.
//
// Per-record failures split by severity: an unrecognized fee type is an
// expected batch anomaly, so the record is skipped and logged with its
// transaction id; an incomplete record means the exporting system produced
// a structurally bad file, so the whole transform aborts with no rows.
func (t *Transformer) TransformExport(doc []byte, asOf time.Time) ([]Row, error) {
	patrons, err := parseExport(doc)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, patron := range patrons {
		for _, fee := range patron.FineFees {
			rec := FineFeeRecord{
				PatronID:      patron.User.Value,
				PatronName:    patron.PatronName,
				ItemBarcode:   fee.ItemBarcode,
				FeeTypeCode:   fee.FineFeeType,
				Amount:        fee.Sum,
				TransactionID: fee.TransactionID,
			}
			row, err := t.transformRecord(rec, asOf)
			if err != nil {
				var unknown *UnknownFeeTypeError
				if errors.As(err, &unknown) {
					t.Logger.Error("Skipping transaction",
						"transactionId", unknown.TransactionID,
						"fineFeeType", unknown.Code)
					continue
				}
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// parseExport scans the document for userExportedFineFeesList elements.
// The scan is depth-independent because the wrapping elements around the
// patron blocks vary between Alma releases; the patron block itself is
// stable.
func parseExport(doc []byte) ([]patronExport, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	var patrons []patronExport
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse bursar export xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "userExportedFineFeesList" {
			continue
		}
		var patron patronExport
		if err := decoder.DecodeElement(&patron, &start); err != nil {
			return nil, fmt.Errorf("failed to decode patron block: %w", err)
		}
		patrons = append(patrons, patron)
	}
	return patrons, nil
}
