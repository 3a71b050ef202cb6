// Package logger builds the application's zerolog loggers from the log
// configuration section: console and rotating-file output in console, text
// or JSON format.
package logger

import (
	"io"
	stdlog "log"

	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/config"
)

// New creates a logger instance from the log configuration section
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	loggerConfig := convertConfig(cfg)

	if loggerConfig.EnableFile && loggerConfig.FilePath == "" {
		return zerolog.Logger{}, common.NewValidationError("file_path", loggerConfig.FilePath, "file path required when file logging enabled")
	}

	factory := NewWriterFactory()
	var writers []io.Writer

	if loggerConfig.EnableConsole {
		writers = append(writers, factory.CreateConsoleWriter(loggerConfig.Format))
	}
	if loggerConfig.EnableFile {
		writers = append(writers, factory.CreateFileWriter(loggerConfig))
	}
	if len(writers) == 0 {
		return zerolog.Logger{}, common.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(loggerConfig.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(loggerConfig.Level)
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}
