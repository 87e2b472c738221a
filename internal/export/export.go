// Package export renders report tables as CSV or XLSX downloads.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Format is a supported download format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts "csv" (default when empty) and "xlsx".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Table is a rectangular report: one header row and data rows of the same width.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// AddRow appends a data row.
func (t *Table) AddRow(cells ...interface{}) {
	t.Rows = append(t.Rows, cells)
}

// FormatCell renders a cell for text output. Money is written with two decimals.
func FormatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.StringFixed(2)
	case *decimal.Decimal:
		if x == nil {
			return ""
		}
		return x.StringFixed(2)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
