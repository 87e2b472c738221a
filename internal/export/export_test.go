package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	t := Table{Name: "sales-summary", Headers: []string{"key", "quantity", "total_amount"}}
	t.AddRow("store 1", int64(3), decimal.RequireFromString("1200.5"))
	t.AddRow("store; 2", int64(0), decimal.Zero)
	return t
}

func TestWriteCSV(t *testing.T) {
	t.Run("comma", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, sampleTable(), ','))

		assert.Equal(t, "\ufeffkey,quantity,total_amount\nstore 1,3,1200.50\nstore; 2,0,0.00\n", buf.String())
	})

	t.Run("semicolon quotes cells holding the delimiter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, sampleTable(), ';'))

		assert.Equal(t, "\ufeffkey;quantity;total_amount\nstore 1;3;1200.50\n\"store; 2\";0;0.00\n", buf.String())
	})

	t.Run("rejects other delimiters", func(t *testing.T) {
		assert.Error(t, WriteCSV(&bytes.Buffer{}, sampleTable(), '\t'))
	})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable(), "Summary"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"key", "quantity", "total_amount"}, rows[0])
	assert.Equal(t, "store 1", rows[1][0])
	assert.Equal(t, "1,200.50", rows[1][2])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil))
	assert.Equal(t, "10.00", FormatCell(decimal.NewFromInt(10)))
	assert.Equal(t, "0.01", FormatCell(decimal.RequireFromString("0.005")))
	assert.Equal(t, "7", FormatCell(7))
}
