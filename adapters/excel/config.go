package excel

import (
	"prodstats/adapters/datareadiness/coercer"
)

// DefaultMaxFileSize is the upload cap applied when none is configured.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// ExcelConfig holds configuration for reading uploaded sheets
type ExcelConfig struct {
	MaxFileSize    int64                  `json:"max_file_size" toml:"max_file_size" validate:"gt=0"`
	CoercionConfig coercer.CoercionConfig `json:"coercion_config" toml:"coercion"`
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		MaxFileSize:    DefaultMaxFileSize,
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
