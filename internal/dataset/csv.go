package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LoadCSV reads a CSV export with the same skip-then-header semantics as
// LoadExcel. Ragged rows are tolerated; the Dataset normalizes them to the
// header width.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	d, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Info("loaded survey CSV",
		slog.String("path", path),
		slog.Int("skip_rows", opts.SkipRows),
		slog.Int("rows", d.RowCount()))

	return d, nil
}

// ReadCSV builds a Dataset from any CSV stream.
func ReadCSV(r io.Reader, opts LoadOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse CSV: %v", ErrSourceUnavailable, err)
	}

	return fromRaw(raw, opts.SkipRows)
}
