package bursar

import "strings"

// csvHeader is the bursar billing file's fixed column set, in order.
var csvHeader = []string{
	"MITID",
	"STUDENTNAME",
	"DETAILCODE",
	"DESCRIPTION",
	"AMOUNT",
	"EFFECTIVEDATE",
	"BILLINGTERM",
}

// EncodeCSV renders rows as the bursar pickup file: every field quoted,
// comma-delimited, "\n" line terminator, header first. The header is
// emitted even when there are no data rows. The bursar ingest requires the
// quote-everything form, which stdlib encoding/csv cannot produce, so the
// seven known columns are written directly.
func EncodeCSV(rows []Row) []byte {
	var b strings.Builder
	writeCSVLine(&b, csvHeader)
	for _, row := range rows {
		writeCSVLine(&b, row.columns())
	}
	return []byte(b.String())
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
