package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultListenAddress, cfg.ServerConfig.ListenAddress)
	assert.Equal(t, DefaultDatabasePath, cfg.StorageConfig.DatabasePath)
	assert.True(t, cfg.DiffConfig.EnableSemanticCleanup)
	assert.Equal(t, "info", cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server_config:
  listen_address: ":9090"
storage_config:
  database_path: "/tmp/test-laws.db"
log_config:
  log_level: debug
  log_format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerConfig.ListenAddress)
	assert.Equal(t, "/tmp/test-laws.db", cfg.StorageConfig.DatabasePath)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultReadTimeoutSec, cfg.ServerConfig.ReadTimeoutSec)
}

func TestLoadGlobalConfig_InvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log_config:
  log_level: shouting
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadGlobalConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_config: ["), 0644))

	_, err := LoadGlobalConfig(path)

	assert.Error(t, err)
}

func TestValidateConfig_CompressionType(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ArchiveConfig.CompressionType = "lzma"

	assert.Error(t, ValidateConfig(cfg))

	cfg.ArchiveConfig.CompressionType = "snappy"
	assert.NoError(t, ValidateConfig(cfg))
}
