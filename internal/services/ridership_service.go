package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fairflow/internal/config"
	"fairflow/internal/files"
	"fairflow/internal/ridership"
	"fairflow/pkg/contracts/domain"
)

// RidershipService loads the subway origin-destination exports and serves
// destination rankings
type RidershipService struct {
	config *config.Config
	paths  *config.Paths
	logger *slog.Logger

	mu      sync.Mutex
	records []domain.RidershipRecord
	loaded  bool
}

// NewRidershipService creates a new ridership service
func NewRidershipService(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *RidershipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RidershipService{
		config: cfg,
		paths:  paths,
		logger: logger,
	}
}

// Records returns all configured ridership records, loading the export
// files on first use.
func (s *RidershipService) Records(ctx context.Context) ([]domain.RidershipRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.records, nil
	}

	paths, err := s.exportPaths(ctx)
	if err != nil {
		return nil, err
	}

	records, err := ridership.LoadFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load ridership files: %w", err)
	}

	s.logger.InfoContext(ctx, "ridership data loaded",
		slog.Int("files", len(paths)),
		slog.Int("records", len(records)))

	s.records = records
	s.loaded = true
	return s.records, nil
}

// exportPaths resolves the configured file list, falling back to discovery
// of ridership*.csv exports in the data directory.
func (s *RidershipService) exportPaths(ctx context.Context) ([]string, error) {
	if len(s.config.Ridership.Files) > 0 {
		paths := make([]string, len(s.config.Ridership.Files))
		for i, f := range s.config.Ridership.Files {
			paths[i] = s.paths.Resolve(f)
		}
		return paths, nil
	}

	found, err := files.NewDiscovery(s.paths.DataDir).FindRidershipExports(".")
	if err != nil {
		return nil, fmt.Errorf("no ridership files configured and discovery failed: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no ridership files configured or discovered in %s", s.paths.DataDir)
	}

	s.logger.InfoContext(ctx, "discovered ridership exports",
		slog.String("dir", s.paths.DataDir),
		slog.Int("count", len(found)))
	return files.Paths(found), nil
}

// Destinations aggregates ridership by destination station after applying
// the filter, ordered by estimated ridership descending.
func (s *RidershipService) Destinations(ctx context.Context, filter ridership.Filter) ([]domain.StationFlow, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return ridership.AggregateDestinations(ridership.Apply(records, filter)), nil
}

// TopDestinations returns the n busiest destinations; n <= 0 uses the
// configured default.
func (s *RidershipService) TopDestinations(ctx context.Context, filter ridership.Filter, n int) ([]domain.StationFlow, error) {
	flows, err := s.Destinations(ctx, filter)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.config.Ridership.TopN
	}
	return ridership.Top(flows, n), nil
}

// BottomDestinations returns the n quietest destinations; n <= 0 uses the
// configured default.
func (s *RidershipService) BottomDestinations(ctx context.Context, filter ridership.Filter, n int) ([]domain.StationFlow, error) {
	flows, err := s.Destinations(ctx, filter)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.config.Ridership.TopN
	}
	return ridership.Bottom(flows, n), nil
}
