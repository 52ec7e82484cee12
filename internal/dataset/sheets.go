package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig addresses a survey that still lives in its Google Sheet
// rather than a downloaded export.
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	ReadRange     string `yaml:"read_range" envconfig:"READ_RANGE"`
	APIKey        string `yaml:"api_key" envconfig:"API_KEY"`
}

// LoadSheet fetches the configured range from the Google Sheets API and
// applies the same skip-then-header semantics as the file loaders.
func LoadSheet(ctx context.Context, cfg SheetsConfig, opts LoadOptions) (*Dataset, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is empty", ErrSourceUnavailable)
	}
	if cfg.ReadRange == "" {
		cfg.ReadRange = "A:AZ"
	}

	svc, err := sheets.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sheets client: %v", ErrSourceUnavailable, err)
	}

	resp, err := svc.Spreadsheets.Values.Get(cfg.SpreadsheetID, cfg.ReadRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch range %q of %s: %v",
			ErrSourceUnavailable, cfg.ReadRange, cfg.SpreadsheetID, err)
	}

	raw := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		raw = append(raw, cells)
	}

	d, err := fromRaw(raw, opts.SkipRows)
	if err != nil {
		return nil, fmt.Errorf("failed to load spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}

	slog.InfoContext(ctx, "loaded survey from Google Sheets",
		slog.String("spreadsheet_id", cfg.SpreadsheetID),
		slog.String("range", cfg.ReadRange),
		slog.Int("rows", d.RowCount()))

	return d, nil
}
