package excel

import (
	"testing"

	"prodstats/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadDataXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Style", "Price", "Sell"},
		{"A", 10, 19.99},
		{nil, nil, nil},
		{"B", 20, nil},
	})

	got, err := NewDataReader("products.xlsx", internal.NewNopLogger()).ReadData(data)
	require.NoError(t, err)

	assert.Equal(t, FormatXLSX, got.Format)
	assert.Equal(t, []string{"Style", "Price", "Sell"}, got.Headers)
	require.Len(t, got.Rows, 2)

	assert.Equal(t, RawRowData{"Style": "A", "Price": "10", "Sell": "19.99"}, got.Rows[0])
	_, present := got.Rows[1].Get("Sell")
	assert.False(t, present)
}

func TestReadDataFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Style"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "first"))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "A1", "Style"))
	require.NoError(t, f.SetCellValue("Other", "A2", "second"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := NewDataReader("book.xlsx", internal.NewNopLogger()).ReadData(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "first", got.Rows[0]["Style"])
}

func TestReadDataCSV(t *testing.T) {
	csvData := "\uFEFFStyle,Pant type,Price\n" +
		"A,Slim,10\n" +
		",,\n" +
		"\"B, wide\",,5\n" +
		"C,Regular,7,extra\n"

	got, err := NewDataReader("products.csv", internal.NewNopLogger()).ReadData([]byte(csvData))
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, got.Format)
	assert.Equal(t, []string{"Style", "Pant type", "Price"}, got.Headers)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "B, wide", got.Rows[1]["Style"])
	_, present := got.Rows[1].Get("Pant type")
	assert.False(t, present)
	assert.Equal(t, RawRowData{"Style": "C", "Pant type": "Regular", "Price": "7"}, got.Rows[2])
}

func TestReadDataHeadersAreExact(t *testing.T) {
	got, err := NewDataReader("x.csv", internal.NewNopLogger()).ReadData([]byte(" Price ,sell\n1,2\n"))
	require.NoError(t, err)
	assert.True(t, got.HasHeader(" Price "))
	assert.False(t, got.HasHeader("Price"))
	assert.False(t, got.HasHeader("Sell"))
}

func TestReadDataSniffsFormat(t *testing.T) {
	workbook := buildWorkbook(t, [][]interface{}{{"Style"}, {"A"}})
	assert.Equal(t, FormatXLSX, DetectFormat(workbook))
	assert.Equal(t, FormatCSV, DetectFormat([]byte("Style\nA\n")))

	got, err := NewDataReader("upload", internal.NewNopLogger()).ReadData(workbook)
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, got.Format)
	require.Len(t, got.Rows, 1)
}

func TestReadDataEmptyInput(t *testing.T) {
	got, err := NewDataReader("empty.csv", internal.NewNopLogger()).ReadData(nil)
	require.NoError(t, err)
	assert.Empty(t, got.Headers)
	assert.Empty(t, got.Rows)

	got, err = NewDataReader("header.csv", internal.NewNopLogger()).ReadData([]byte("Style,Price\n"))
	require.NoError(t, err)
	assert.Len(t, got.Headers, 2)
	assert.Empty(t, got.Rows)
}

func TestReadDataCorruptWorkbook(t *testing.T) {
	_, err := NewDataReader("broken.xlsx", internal.NewNopLogger()).ReadData([]byte("PK\x03\x04not really a zip"))
	assert.Error(t, err)
}
