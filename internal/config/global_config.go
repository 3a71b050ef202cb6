package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aleister1102/synopse/internal/common"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	ServerConfig  ServerConfig  `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	DiffConfig    DiffConfig    `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	ArchiveConfig ArchiveConfig `json:"archive_config,omitempty" yaml:"archive_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ServerConfig:  NewDefaultServerConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		DiffConfig:    NewDefaultDiffConfig(),
		ArchiveConfig: NewDefaultArchiveConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default
// locations. The path is determined by GetConfigPath; both YAML and JSON
// are supported, YAML preferred for .yaml/.yml extensions. A missing
// config file is not an error: defaults apply.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, common.WrapError(err, "config validation failed")
	}

	return cfg, nil
}

// parseConfigContent parses the raw file content into cfg based on the
// file extension.
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.WrapError(err, "invalid YAML")
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.WrapError(err, "invalid JSON")
	}
	return nil
}
