package export

import (
	"bytes"
	"fmt"
	"strings"
)

// CSVExporter writes every field wrapped in double quotes, doubling embedded quotes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces the header line followed by one line per row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writeQuotedLine(buf, data.Headers)
	for _, row := range data.Rows {
		writeQuotedLine(buf, data.record(row))
	}
	return buf.Bytes(), nil
}

func writeQuotedLine(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
