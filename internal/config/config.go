package config

import (
	"os"
	"strconv"
	"time"

	"prodstats/adapters/excel"
	"prodstats/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `validate:"required"`
	Upload      excel.ExcelConfig `validate:"required"`
	Log         LogConfig         `validate:"required"`
	Diagnostics DiagnosticsConfig
	Viewer      ViewerConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	GinMode         string        `validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
	Format string `validate:"oneof=console json"`
}

// DiagnosticsConfig holds the health, metrics and pprof listener settings
type DiagnosticsConfig struct {
	Port    string `validate:"required,numeric"`
	Enabled bool
}

// ViewerConfig holds presentation defaults
type ViewerConfig struct {
	// ExtendedFields exposes Size, Date and ID in the selectors before any
	// upload has revealed the sheet layout.
	ExtendedFields bool
	// FormatIDs shows point IDs as "<style>_<id>".
	FormatIDs bool
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "debug",
			ShutdownTimeout: 10 * time.Second,
		},
		Upload: excel.DefaultExcelConfig(),
		Log: LogConfig{
			Level:  "INFO",
			Format: "console",
		},
		Diagnostics: DiagnosticsConfig{
			Port:    "6060",
			Enabled: false,
		},
	}
}

// Load reads configuration from defaults, an optional TOML file named by
// PRODSTATS_CONFIG, then environment variables, and validates the result
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("PRODSTATS_CONFIG"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to load config file %s", path))
		}
		file.Apply(config)
	}

	loadServerConfig(&config.Server)
	loadUploadConfig(&config.Upload)
	loadLogConfig(&config.Log)
	loadDiagnosticsConfig(&config.Diagnostics)
	loadViewerConfig(&config.Viewer)

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func loadServerConfig(c *ServerConfig) {
	c.Port = getEnvOrDefault("PORT", c.Port)
	c.GinMode = getEnvOrDefault("GIN_MODE", c.GinMode)
	c.ShutdownTimeout = getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

func loadUploadConfig(c *excel.ExcelConfig) {
	if mb := getEnvIntOrDefault("MAX_UPLOAD_MB", 0); mb > 0 {
		c.MaxFileSize = int64(mb) * 1024 * 1024
	}
	c.CoercionConfig.Date1904 = getEnvBoolOrDefault("DATE_1904", c.CoercionConfig.Date1904)
}

func loadLogConfig(c *LogConfig) {
	c.Level = getEnvOrDefault("LOG_LEVEL", c.Level)
	c.Format = getEnvOrDefault("LOG_FORMAT", c.Format)
}

func loadDiagnosticsConfig(c *DiagnosticsConfig) {
	c.Port = getEnvOrDefault("PPROF_PORT", c.Port)
	c.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", c.Enabled)
}

func loadViewerConfig(c *ViewerConfig) {
	c.ExtendedFields = getEnvBoolOrDefault("EXTENDED_FIELDS", c.ExtendedFields)
	c.FormatIDs = getEnvBoolOrDefault("FORMAT_IDS", c.FormatIDs)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tag constraints on config
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "configuration validation failed"))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
