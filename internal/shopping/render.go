package shopping

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// FormatAmount prints d in plain decimal notation without trailing fractional
// zeros: 150, 0.5, 0.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// Render writes one "<name>: <total> <unit>" line per aggregated line.
func Render(lines []AggregatedLine) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line.Name)
		buf.WriteString(": ")
		buf.WriteString(FormatAmount(line.Total))
		buf.WriteByte(' ')
		buf.WriteString(line.Unit)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
