package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// TypeCoercer converts raw sheet cells into record values with fixed rules
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	DateLayouts []string `json:"date_layouts" toml:"date_layouts"` // tried in order for textual dates
	Date1904    bool     `json:"date_1904" toml:"date_1904"`       // workbook uses the 1904 date system
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006",
			"1/2/2006",
			"2006/01/02",
			"02-Jan-2006",
			"01-02-06",
		},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	if len(config.DateLayouts) == 0 {
		config.DateLayouts = DefaultCoercionConfig().DateLayouts
	}
	return &TypeCoercer{config: config}
}

// CleanString turns a possibly missing cell into trimmed text.
func (c *TypeCoercer) CleanString(raw string, present bool) string {
	if !present {
		return ""
	}
	return strings.TrimSpace(raw)
}

// Number parses a cell as a finite decimal number. A missing cell is not a
// number; a present cell holding only whitespace reads as zero.
func (c *TypeCoercer) Number(raw string, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" {
		return 0, true
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil {
		return 0, false
	}
	// Additional validation: not infinity, not NaN
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// Timestamp parses a cell as a date. Numeric cells are read as spreadsheet
// serial dates; text is tried against the configured layouts.
func (c *TypeCoercer) Timestamp(raw string, present bool) (time.Time, bool) {
	cleanVal := c.CleanString(raw, present)
	if cleanVal == "" {
		return time.Time{}, false
	}

	if serial, ok := c.Number(cleanVal, true); ok {
		if serial <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, c.config.Date1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, cleanVal); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
