package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM makes spreadsheet applications detect the encoding of the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes t with a UTF-8 BOM. delimiter must be ',' or ';'.
func WriteCSV(w io.Writer, t Table, delimiter rune) error {
	if delimiter != ',' && delimiter != ';' {
		return fmt.Errorf("csv delimiter must be ',' or ';', got %q", delimiter)
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing csv bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, FormatCell(cell))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
