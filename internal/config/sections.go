package config

// ServerConfig defines configuration for the HTTP API server
type ServerConfig struct {
	ListenAddress    string `json:"listen_address,omitempty" yaml:"listen_address,omitempty" validate:"required"`
	ReadTimeoutSec   int    `json:"read_timeout_sec,omitempty" yaml:"read_timeout_sec,omitempty" validate:"gte=1"`
	WriteTimeoutSec  int    `json:"write_timeout_sec,omitempty" yaml:"write_timeout_sec,omitempty" validate:"gte=1"`
	ShutdownGraceSec int    `json:"shutdown_grace_sec,omitempty" yaml:"shutdown_grace_sec,omitempty" validate:"gte=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddress:    DefaultListenAddress,
		ReadTimeoutSec:   DefaultReadTimeoutSec,
		WriteTimeoutSec:  DefaultWriteTimeoutSec,
		ShutdownGraceSec: DefaultShutdownGraceSec,
	}
}

// StorageConfig defines configuration for the version store
type StorageConfig struct {
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		DatabasePath: DefaultDatabasePath,
	}
}

// DiffConfig defines configuration for the text-synopsis engine
type DiffConfig struct {
	EnableSemanticCleanup bool `json:"enable_semantic_cleanup" yaml:"enable_semantic_cleanup"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		EnableSemanticCleanup: true,
	}
}

// ArchiveConfig defines configuration for parquet history snapshots
type ArchiveConfig struct {
	BasePath        string `json:"base_path,omitempty" yaml:"base_path,omitempty"`
	CompressionType string `json:"compression_type,omitempty" yaml:"compression_type,omitempty" validate:"omitempty,oneof=zstd gzip snappy none"`
}

// NewDefaultArchiveConfig creates default archive configuration
func NewDefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		BasePath:        DefaultArchiveBasePath,
		CompressionType: "zstd",
	}
}

// LogConfig defines configuration for application logging
type LogConfig struct {
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"omitempty,gte=1"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"omitempty,gte=0"`
}

// NewDefaultLogConfig creates default log configuration
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogLevel:      "info",
		LogFormat:     "console",
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
		MaxLogBackups: DefaultMaxLogBackups,
	}
}
