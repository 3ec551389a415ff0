package excel

// RawRowData holds the non-blank cells of one data row keyed by header.
// A header with no entry means the cell was missing or empty.
type RawRowData map[string]string

// Get returns the cell under header and whether it was present.
func (r RawRowData) Get(header string) (string, bool) {
	v, ok := r[header]
	return v, ok
}

// ExcelData represents the first sheet of an upload
type ExcelData struct {
	Format  string       // "xlsx" or "csv"
	Headers []string     // Column headers, untrimmed
	Rows    []RawRowData // Data rows, blank rows skipped
}

// HasHeader reports whether the sheet carries a column named h.
func (d *ExcelData) HasHeader(h string) bool {
	for _, header := range d.Headers {
		if header == h {
			return true
		}
	}
	return false
}
