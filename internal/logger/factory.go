package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterFactory creates log writers based on the configured format
type WriterFactory struct{}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

// CreateConsoleWriter creates a writer for stderr output
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat) io.Writer {
	return wf.wrap(os.Stderr, format, false)
}

// CreateFileWriter creates a file writer with rotation
func (wf *WriterFactory) CreateFileWriter(config LoggerConfig) io.Writer {
	finalPath := config.FilePath
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		// If directory creation fails, lumberjack will surface the write
		// error later; keep the configured path.
		finalPath = config.FilePath
	}

	rotating := &lumberjack.Logger{
		Filename:   finalPath,
		MaxSize:    config.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: config.MaxBackups,
	}

	// Console-formatted file output would embed color codes; force them
	// off.
	return wf.wrap(rotating, config.Format, true)
}

func (wf *WriterFactory) wrap(out io.Writer, format LogFormat, noColor bool) io.Writer {
	switch format {
	case FormatConsole:
		return zerolog.ConsoleWriter{Out: out, NoColor: noColor}
	case FormatText:
		return zerolog.ConsoleWriter{Out: out, NoColor: true}
	default:
		return out
	}
}
