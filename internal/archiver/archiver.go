// Package archiver exports the full paragraph-version history of the
// store to Parquet snapshot files.
package archiver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/aleister1102/synopse/internal/common"
	"github.com/aleister1102/synopse/internal/config"
	"github.com/aleister1102/synopse/internal/models"
)

// HistorySource is the slice of the store the archiver reads.
type HistorySource interface {
	ListParagraphHistory() ([]models.ParagraphVersion, error)
}

// Archiver writes history snapshots of the version store.
type Archiver struct {
	config *config.ArchiveConfig
	source HistorySource
	logger zerolog.Logger
}

// ArchiverBuilder provides a fluent interface for creating Archiver
type ArchiverBuilder struct {
	config *config.ArchiveConfig
	source HistorySource
	logger zerolog.Logger
}

// NewArchiverBuilder creates a new ArchiverBuilder
func NewArchiverBuilder(logger zerolog.Logger) *ArchiverBuilder {
	return &ArchiverBuilder{
		logger: logger.With().Str("component", "Archiver").Logger(),
	}
}

// WithArchiveConfig sets the archive configuration
func (b *ArchiverBuilder) WithArchiveConfig(cfg *config.ArchiveConfig) *ArchiverBuilder {
	b.config = cfg
	return b
}

// WithSource sets the history source to snapshot
func (b *ArchiverBuilder) WithSource(source HistorySource) *ArchiverBuilder {
	b.source = source
	return b
}

// Build creates a new Archiver instance
func (b *ArchiverBuilder) Build() (*Archiver, error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "archive config cannot be nil")
	}
	if b.source == nil {
		return nil, common.NewValidationError("source", b.source, "history source cannot be nil")
	}
	return &Archiver{
		config: b.config,
		source: b.source,
		logger: b.logger,
	}, nil
}

// ArchiveResult contains the result of a snapshot operation
type ArchiveResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	ArchiveTime    time.Duration
}

// ExportHistory reads the full paragraph history from the source and
// writes it to a timestamped Parquet file under the configured base path.
func (a *Archiver) ExportHistory(ctx context.Context) (*ArchiveResult, error) {
	startTime := time.Now()

	if a.config.BasePath == "" {
		return nil, common.NewValidationError("base_path", a.config.BasePath, "archive base path is not configured")
	}

	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "archive cancelled")
	}

	history, err := a.source.ListParagraphHistory()
	if err != nil {
		return nil, common.WrapError(err, "failed to read paragraph history")
	}

	archivedAtMs := startTime.UnixMilli()
	records := make([]ParquetParagraphRecord, 0, len(history))
	for _, pv := range history {
		records = append(records, toParquetRecord(pv, archivedAtMs))
	}

	filePath, err := a.prepareOutputFile(startTime)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "archive cancelled")
	}

	recordsWritten, err := a.writeToParquetFile(filePath, records)
	if err != nil {
		return nil, err
	}

	fileSize := int64(0)
	if fileInfo, statErr := os.Stat(filePath); statErr == nil {
		fileSize = fileInfo.Size()
	}

	result := &ArchiveResult{
		FilePath:       filePath,
		RecordsWritten: recordsWritten,
		FileSize:       fileSize,
		ArchiveTime:    time.Since(startTime),
	}

	a.logger.Info().
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Int64("file_size", result.FileSize).
		Dur("archive_time", result.ArchiveTime).
		Msg("Wrote history snapshot")

	return result, nil
}

// prepareOutputFile creates the archive directory and builds the snapshot
// file path.
func (a *Archiver) prepareOutputFile(snapshotTime time.Time) (string, error) {
	if err := os.MkdirAll(a.config.BasePath, 0755); err != nil {
		return "", common.WrapError(err, "failed to create archive directory: "+a.config.BasePath)
	}
	fileName := fmt.Sprintf("laws-history-%s.parquet", snapshotTime.Format("20060102-150405"))
	return filepath.Join(a.config.BasePath, fileName), nil
}

func (a *Archiver) writeToParquetFile(filePath string, records []ParquetParagraphRecord) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, common.WrapError(err, "failed to create parquet file: "+filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ParquetParagraphRecord](file, a.compressionOption())

	recordsWritten, err := writer.Write(records)
	if err != nil {
		writer.Close()
		return 0, common.WrapError(err, "failed to write history records to parquet file")
	}
	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet file")
	}
	return recordsWritten, nil
}

func (a *Archiver) compressionOption() parquet.WriterOption {
	switch a.config.CompressionType {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}
