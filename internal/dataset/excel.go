package dataset

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"
)

// LoadOptions configures how a raw sheet becomes a Dataset.
type LoadOptions struct {
	// SkipRows is the number of leading rows discarded before the header
	// row. The CUNY MetroCard survey export carries 8 preamble rows.
	SkipRows int
	// Sheet selects a worksheet by name. Empty means the first sheet.
	Sheet string
}

// LoadExcel reads a survey workbook and returns its rows as a Dataset.
func LoadExcel(path string, opts LoadOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", ErrSourceUnavailable, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", ErrSourceUnavailable, sheet, err)
	}

	d, err := fromRaw(rows, opts.SkipRows)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	slog.Info("loaded survey workbook",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("skip_rows", opts.SkipRows),
		slog.Int("rows", d.RowCount()),
		slog.Int("columns", len(d.columns)))

	return d, nil
}
