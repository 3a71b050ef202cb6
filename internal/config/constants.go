package config

// Default values for configuration sections
const (
	DefaultListenAddress    = ":8080"
	DefaultReadTimeoutSec   = 10
	DefaultWriteTimeoutSec  = 30
	DefaultShutdownGraceSec = 10

	DefaultDatabasePath    = "data/laws.db"
	DefaultArchiveBasePath = "data/archive"

	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
