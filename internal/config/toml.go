package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys leave the
// current value alone.
type FileConfig struct {
	Server struct {
		Port            *string `toml:"port"`
		GinMode         *string `toml:"gin-mode"`
		ShutdownTimeout *string `toml:"shutdown-timeout"`
	} `toml:"server"`
	Upload struct {
		MaxUploadMB *int     `toml:"max-upload-mb"`
		Date1904    *bool    `toml:"date-1904"`
		DateLayouts []string `toml:"date-layouts"`
	} `toml:"upload"`
	Log struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
	} `toml:"log"`
	Diagnostics struct {
		Port    *string `toml:"port"`
		Enabled *bool   `toml:"enabled"`
	} `toml:"diagnostics"`
	Viewer struct {
		ExtendedFields *bool `toml:"extended-fields"`
		FormatIDs      *bool `toml:"format-ids"`
	} `toml:"viewer"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the keys present in the file onto c.
func (f FileConfig) Apply(c *Config) {
	setString(&c.Server.Port, f.Server.Port)
	setString(&c.Server.GinMode, f.Server.GinMode)
	if f.Server.ShutdownTimeout != nil {
		if d, err := time.ParseDuration(*f.Server.ShutdownTimeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	if f.Upload.MaxUploadMB != nil {
		c.Upload.MaxFileSize = int64(*f.Upload.MaxUploadMB) * 1024 * 1024
	}
	setBool(&c.Upload.CoercionConfig.Date1904, f.Upload.Date1904)
	if len(f.Upload.DateLayouts) > 0 {
		c.Upload.CoercionConfig.DateLayouts = f.Upload.DateLayouts
	}

	setString(&c.Log.Level, f.Log.Level)
	setString(&c.Log.Format, f.Log.Format)

	setString(&c.Diagnostics.Port, f.Diagnostics.Port)
	setBool(&c.Diagnostics.Enabled, f.Diagnostics.Enabled)

	setBool(&c.Viewer.ExtendedFields, f.Viewer.ExtendedFields)
	setBool(&c.Viewer.FormatIDs, f.Viewer.FormatIDs)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
