package ridership

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"fairflow/pkg/contracts/domain"
)

// header keys after normalization. The yearly dataset exports use title
// case with spaces ("Origin Station Complex ID") while the Socrata API
// export uses snake_case; both normalize to the same key.
const (
	colYear       = "year"
	colMonth      = "month"
	colDayOfWeek  = "day_of_week"
	colHourOfDay  = "hour_of_day"
	colOriginID   = "origin_station_complex_id"
	colOriginName = "origin_station_complex_name"
	colOriginLat  = "origin_latitude"
	colOriginLon  = "origin_longitude"
	colDestID     = "destination_station_complex_id"
	colDestName   = "destination_station_complex_name"
	colDestLat    = "destination_latitude"
	colDestLon    = "destination_longitude"
	colRidership  = "estimated_average_ridership"
)

func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// Read parses one origin-destination CSV stream.
func Read(r io.Reader) ([]domain.RidershipRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}
	for _, required := range []string{colDestID, colDestName, colRidership} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("ridership CSV is missing column %q", required)
		}
	}

	field := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	asInt := func(row []string, key string) int {
		v, _ := strconv.Atoi(field(row, key))
		return v
	}
	asFloat := func(row []string, key string) float64 {
		v, _ := strconv.ParseFloat(field(row, key), 64)
		return v
	}

	var records []domain.RidershipRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(records)+1, err)
		}
		records = append(records, domain.RidershipRecord{
			Year:                 asInt(row, colYear),
			Month:                asInt(row, colMonth),
			DayOfWeek:            field(row, colDayOfWeek),
			HourOfDay:            asInt(row, colHourOfDay),
			OriginID:             field(row, colOriginID),
			OriginName:           field(row, colOriginName),
			OriginLatitude:       asFloat(row, colOriginLat),
			OriginLongitude:      asFloat(row, colOriginLon),
			DestinationID:        field(row, colDestID),
			DestinationName:      field(row, colDestName),
			DestinationLatitude:  asFloat(row, colDestLat),
			DestinationLongitude: asFloat(row, colDestLon),
			EstimatedRidership:   asFloat(row, colRidership),
		})
	}
	return records, nil
}

// LoadFile parses one origin-destination CSV file.
func LoadFile(path string) ([]domain.RidershipRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ridership file: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// LoadFiles loads several yearly exports concurrently and concatenates them
// in the order the paths were given, matching how the dashboard stitches
// the 2021 through 2024 Hunter College datasets together.
func LoadFiles(ctx context.Context, paths []string) ([]domain.RidershipRecord, error) {
	perFile := make([][]domain.RidershipRecord, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := LoadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.RidershipRecord
	for _, records := range perFile {
		all = append(all, records...)
	}

	slog.InfoContext(ctx, "loaded ridership datasets",
		slog.Int("files", len(paths)),
		slog.Int("records", len(all)))

	return all, nil
}
