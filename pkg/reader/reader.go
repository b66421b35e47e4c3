// Package reader loads raw input files for the cost pipeline: the
// semicolon-delimited usage export and the JSON spot price sources.
//
// The reader owns all file-system access; the core packages only see
// already-loaded rows and byte slices.
//
// Example usage:
//
//	r := reader.New(reader.Config{}, logger.Default())
//	rows, err := r.ReadUsageFile("sahko.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/usage"
)

const (
	// MaxFileSize is the maximum allowed input file size (100MB).
	// Larger files are rejected to prevent memory exhaustion.
	MaxFileSize = 100 * 1024 * 1024

	// usageDelimiter separates columns in the usage export.
	usageDelimiter = ';'
)

// utf8BOM is the byte order mark usage exports start with.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads usage exports and spot price sources from disk.
type Reader interface {
	// ReadUsageFile reads a usage export into raw rows.
	//
	// The export is semicolon-delimited with an optional UTF-8 BOM
	// and one header line, two columns per row: date and usage.
	// Row order is preserved.
	ReadUsageFile(path string) ([]usage.Row, error)

	// ReadPriceFile reads one spot price source as raw bytes for the
	// price index builder.
	ReadPriceFile(path string) ([]byte, error)

	// ReadPriceFiles reads multiple price sources, preserving path
	// order so later files overwrite earlier ones during the merge.
	ReadPriceFiles(paths []string) ([][]byte, error)
}

// Config contains reader configuration.
type Config struct {
	// MaxFileSize caps input file size in bytes.
	// Defaults to MaxFileSize.
	MaxFileSize int64
}

// fileReader implements the Reader interface.
type fileReader struct {
	config Config
	logger logger.Logger
}

// New creates a file reader.
func New(cfg Config, log logger.Logger) Reader {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = MaxFileSize
	}

	return &fileReader{
		config: cfg,
		logger: log,
	}
}

// ReadUsageFile implements Reader.ReadUsageFile.
func (r *fileReader) ReadUsageFile(path string) ([]usage.Row, error) {
	r.logger.Info("loading usage export", "path", path)

	data, err := r.readCapped(path)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.Comma = usageDelimiter
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse usage export %s: %w", path, err)
	}

	// The first line is a column header, not data.
	if len(records) > 0 {
		records = records[1:]
	}

	rows := make([]usage.Row, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: line %d has %d columns",
				ErrMalformedExport, i+2, len(record))
		}

		rows = append(rows, usage.Row{
			DateText:  record[0],
			UsageText: record[1],
		})
	}

	r.logger.Info("read usage rows", "path", path, "rows", len(rows))

	return rows, nil
}

// ReadPriceFile implements Reader.ReadPriceFile.
func (r *fileReader) ReadPriceFile(path string) ([]byte, error) {
	r.logger.Info("loading spot prices", "path", path)

	return r.readCapped(path)
}

// ReadPriceFiles implements Reader.ReadPriceFiles.
func (r *fileReader) ReadPriceFiles(paths []string) ([][]byte, error) {
	sources := make([][]byte, 0, len(paths))

	for _, path := range paths {
		data, err := r.ReadPriceFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, data)
	}

	return sources, nil
}

// readCapped reads a whole file, enforcing the size cap first.
func (r *fileReader) readCapped(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Size() > r.config.MaxFileSize {
		return nil, fmt.Errorf("%w: size=%d, max=%d",
			ErrFileTooLarge, info.Size(), r.config.MaxFileSize)
	}

	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return data, nil
}
