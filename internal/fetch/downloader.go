// Package fetch downloads the MTA origin-destination ridership exports from
// the data.ny.gov Socrata API into the local data directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// datasetEndpoint is the CSV resource of the subway origin-destination
// ridership dataset.
const datasetEndpoint = "https://data.ny.gov/resource/jsu2-fbtj.csv"

// QueryOptions bound the export the way the analysis scripts do: a month
// range and the daytime hour window.
type QueryOptions struct {
	MonthFrom int
	MonthTo   int
	HourFrom  int
	HourTo    int
}

// DefaultQuery covers the observed August-September daytime export.
func DefaultQuery() QueryOptions {
	return QueryOptions{MonthFrom: 8, MonthTo: 9, HourFrom: 6, HourTo: 20}
}

// DatasetURL renders the SoQL query for the bounded export.
func DatasetURL(opts QueryOptions) string {
	soql := fmt.Sprintf(
		"SELECT year, month, day_of_week, hour_of_day, timestamp, "+
			"origin_station_complex_id, origin_station_complex_name, origin_latitude, origin_longitude, "+
			"destination_station_complex_id, destination_station_complex_name, destination_latitude, destination_longitude, "+
			"estimated_average_ridership "+
			"WHERE (month BETWEEN %d AND %d) AND (hour_of_day BETWEEN %d AND %d) "+
			"ORDER BY month DESC NULL LAST, hour_of_day DESC NULL LAST",
		opts.MonthFrom, opts.MonthTo, opts.HourFrom, opts.HourTo)
	return datasetEndpoint + "?$query=" + url.QueryEscape(soql)
}

// Downloader fetches dataset exports with a client-side rate limit, since
// anonymous Socrata clients are throttled aggressively.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewDownloader creates a downloader. A nil logger falls back to the
// default slog logger.
func NewDownloader(logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client:  &http.Client{Timeout: 5 * time.Minute},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		logger:  logger.With(slog.String("component", "downloader")),
	}
}

// Download fetches the URL into dest. The file appears atomically: the body
// streams to a temp file in the destination directory, renamed only after
// the full body arrived.
func (d *Downloader) Download(ctx context.Context, rawURL, dest string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	d.logger.InfoContext(ctx, "downloading ridership dataset",
		slog.String("url", rawURL),
		slog.String("dest", dest))

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset fetch returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move dataset into place: %w", err)
	}

	d.logger.InfoContext(ctx, "download complete",
		slog.String("dest", dest),
		slog.Int64("bytes", written))

	return nil
}
