package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"prodstats/domain/core"
	"prodstats/internal"

	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = "\uFEFF"
)

// DataReader decodes the first sheet of an uploaded workbook or CSV file
type DataReader struct {
	fileName string
	fileType string
	logger   *internal.Logger
}

// NewDataReader creates a reader for an upload named fileName. The format
// follows the extension; unknown extensions are sniffed from content.
func NewDataReader(fileName string, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	fileType := ""
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm", ".xls":
		fileType = FormatXLSX
	case ".csv":
		fileType = FormatCSV
	}
	return &DataReader{fileName: fileName, fileType: fileType, logger: logger.Named("DataReader")}
}

// DetectFormat returns "xlsx" for zip containers and "csv" otherwise.
func DetectFormat(data []byte) string {
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadData decodes data into headers and keyed rows
func (r *DataReader) ReadData(data []byte) (*ExcelData, error) {
	fileType := r.fileType
	if fileType == "" {
		fileType = DetectFormat(data)
	}
	r.logger.Debug("Starting to read %s file: %s (%d bytes)", fileType, r.fileName, len(data))

	var (
		rows [][]string
		err  error
	)
	switch fileType {
	case FormatCSV:
		rows, err = r.readCSVRows(data)
	case FormatXLSX:
		rows, err = r.readExcelRows(data)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, fileType)
	}
	if err != nil {
		return nil, err
	}
	return r.processRows(fileType, rows), nil
}

// readExcelRows reads the first worksheet with raw cell values so numbers
// and date serials are not reformatted by the cell style.
func (r *DataReader) readExcelRows(data []byte) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrNoData
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.logger.Debug("Sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows keys each data row by the header row. Empty cells are left
// out of the row and rows without any non-empty cell are dropped.
func (r *DataReader) processRows(fileType string, rows [][]string) *ExcelData {
	out := &ExcelData{Format: fileType}
	if len(rows) == 0 {
		return out
	}

	out.Headers = append([]string(nil), rows[0]...)
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j >= len(out.Headers) || cell == "" {
				continue
			}
			header := out.Headers[j]
			if header == "" {
				continue
			}
			if _, dup := rowData[header]; dup {
				continue
			}
			rowData[header] = cell
		}
		if len(rowData) == 0 {
			continue
		}
		out.Rows = append(out.Rows, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(fileType), len(out.Headers), len(out.Rows))
	return out
}
