package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 16, cfg.Server.BodyLimitMB)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "fs", cfg.Data.Backend)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 300, cfg.Data.CacheTTLSeconds)
	assert.Equal(t, "catalog", cfg.Storage.Bucket)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATA_BACKEND", "s3")
	t.Setenv("SERVER_PORT", "9999")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATA_PREFIX=catalog/v2\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("DATA_PREFIX")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Data.Backend)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "catalog/v2", cfg.Data.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}
