package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"prodstats/adapters/excel"
	"prodstats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRODSTATS_CONFIG", "PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "MAX_UPLOAD_MB", "DATE_1904",
		"LOG_LEVEL", "LOG_FORMAT", "PPROF_PORT", "PPROF_ENABLED", "EXTENDED_FIELDS", "FORMAT_IDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, excel.DefaultMaxFileSize, cfg.Upload.MaxFileSize)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.False(t, cfg.Diagnostics.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, int64(2*1024*1024), cfg.Upload.MaxFileSize)
	assert.True(t, cfg.Diagnostics.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "chaos")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	clearEnv(t)
	t.Setenv("PORT", "http")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadTOMLOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "prodstats.toml")
	content := `
[server]
port = "7000"

[upload]
max-upload-mb = 5
date-1904 = true

[log]
format = "json"

[viewer]
extended-fields = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PRODSTATS_CONFIG", path)
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileSize)
	assert.True(t, cfg.Upload.CoercionConfig.Date1904)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.True(t, cfg.Viewer.ExtendedFields)
	assert.Equal(t, "debug", cfg.Server.GinMode)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "prodstats.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \"7000\"\n"), 0o644))
	t.Setenv("PRODSTATS_CONFIG", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7100", cfg.Server.Port)
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	file, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, file.Server.Port)
}

func TestLoadFileMalformed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0o644))
	t.Setenv("PRODSTATS_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
