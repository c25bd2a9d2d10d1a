package bursar

// descriptionLimit is the width of the bursar system's DESCRIPTION column.
const descriptionLimit = 30

// FeeTypeCatalog maps Alma fine/fee type codes to the labels the bursar
// billing file carries. The vocabulary is closed: a code missing from the
// catalog is an integration problem, never silently defaulted.
type FeeTypeCatalog map[string]string

// DefaultFeeTypeCatalog covers the fine/fee types configured in the Alma
// bursar integration profile.
func DefaultFeeTypeCatalog() FeeTypeCatalog {
	return FeeTypeCatalog{
		"DAMAGEDITEMFINE":        "Library damaged",
		"LOSTITEMPROCESSFEE":     "Library lost",
		"LOSTITEMREPLACEMENTFEE": "Library repl",
		"OVERDUEFINE":            "Library overdue",
		"OTHER":                  "Library other",
		"RECALLEDOVERDUEFINE":    "Library recalled",
	}
}

// Describe builds the DESCRIPTION value for a charge: the mapped label, a
// space, and the item barcode, truncated to the column's 30-byte limit.
// Unknown codes fail with *UnknownFeeTypeError.
func (c FeeTypeCatalog) Describe(feeTypeCode, itemBarcode string) (string, error) {
	label, ok := c[feeTypeCode]
	if !ok {
		return "", &UnknownFeeTypeError{Code: feeTypeCode}
	}
	description := label + " " + itemBarcode
	if len(description) > descriptionLimit {
		description = description[:descriptionLimit]
	}
	return description, nil
}
