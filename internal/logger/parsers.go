package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/config"
)

// convertConfig maps the user-facing config section onto the internal
// logger configuration. Unknown values fall back to defaults rather than
// failing: logging must come up even with a sloppy config.
func convertConfig(cfg config.LogConfig) LoggerConfig {
	loggerConfig := DefaultLoggerConfig()

	loggerConfig.Level = parseLevel(cfg.LogLevel)
	loggerConfig.Format = parseFormat(cfg.LogFormat)

	if cfg.LogFile != "" {
		loggerConfig.EnableFile = true
		loggerConfig.FilePath = cfg.LogFile
	}
	if cfg.MaxLogSizeMB > 0 {
		loggerConfig.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		loggerConfig.MaxBackups = cfg.MaxLogBackups
	}

	return loggerConfig
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

func parseFormat(format string) LogFormat {
	switch strings.ToLower(format) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
