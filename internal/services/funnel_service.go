package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fairflow/internal/config"
	"fairflow/internal/dataset"
	"fairflow/internal/funnel"
	"fairflow/internal/sankey"
	"fairflow/pkg/contracts/domain"
)

// FunnelService loads the survey dataset and runs funnel aggregations
type FunnelService struct {
	config     *config.Config
	paths      *config.Paths
	logger     *slog.Logger
	aggregator *funnel.Aggregator
	runCounter metric.Int64Counter

	mu     sync.Mutex
	cached *funnelRun
}

// funnelRun is one completed aggregation over a dataset snapshot
type funnelRun struct {
	dataset    *dataset.Dataset
	definition funnel.Definition
	result     *domain.FunnelResult
}

// NewFunnelService creates a new funnel service
func NewFunnelService(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*FunnelService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	runCounter, err := otel.Meter("fairflow").Int64Counter("funnel.runs",
		metric.WithDescription("Number of funnel aggregation runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create funnel run counter: %w", err)
	}

	return &FunnelService{
		config:     cfg,
		paths:      paths,
		logger:     logger,
		aggregator: funnel.NewAggregator(logger),
		runCounter: runCounter,
	}, nil
}

// Definition returns the funnel definition in effect: the YAML override
// when configured, otherwise the built-in Fair Fares chain.
func (s *FunnelService) Definition() (funnel.Definition, error) {
	if s.config.Survey.FunnelFile == "" {
		def := funnel.FairFares()
		def.SkipRows = s.config.Survey.SkipRows
		return def, nil
	}

	def, err := funnel.LoadDefinition(s.paths.Resolve(s.config.Survey.FunnelFile))
	if err != nil {
		return funnel.Definition{}, fmt.Errorf("failed to load funnel definition: %w", err)
	}
	return def, nil
}

// LoadDataset reads the survey from the configured source. Google Sheets
// wins when a spreadsheet ID is configured; otherwise the file extension
// picks the loader.
func (s *FunnelService) LoadDataset(ctx context.Context, def funnel.Definition) (*dataset.Dataset, error) {
	opts := dataset.LoadOptions{
		SkipRows: def.SkipRows,
		Sheet:    s.config.Survey.Sheet,
	}

	if s.config.Survey.Sheets.SpreadsheetID != "" {
		s.logger.InfoContext(ctx, "loading survey from Google Sheets",
			slog.String("spreadsheet_id", s.config.Survey.Sheets.SpreadsheetID))
		return dataset.LoadSheet(ctx, s.config.Survey.Sheets, opts)
	}

	path := s.paths.Resolve(s.config.Survey.File)
	s.logger.InfoContext(ctx, "loading survey file", slog.String("path", path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.LoadCSV(path, opts)
	default:
		return dataset.LoadExcel(path, opts)
	}
}

// Run loads the survey and aggregates the funnel, replacing any cached run
func (s *FunnelService) Run(ctx context.Context) (*domain.FunnelResult, error) {
	def, err := s.Definition()
	if err != nil {
		return nil, err
	}

	ds, err := s.LoadDataset(ctx, def)
	if err != nil {
		return nil, err
	}

	result, err := s.aggregator.Aggregate(ctx, ds, def)
	if err != nil {
		return nil, err
	}

	s.runCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("definition", def.Name),
	))
	s.logger.InfoContext(ctx, "funnel aggregation completed",
		slog.String("definition", def.Name),
		slog.Int("grand_total", result.GrandTotal),
		slog.Int("stages", len(result.Stages)))

	s.mu.Lock()
	s.cached = &funnelRun{dataset: ds, definition: def, result: result}
	s.mu.Unlock()

	return result, nil
}

// Result returns the cached aggregation, running the funnel on first use
func (s *FunnelService) Result(ctx context.Context) (*domain.FunnelResult, error) {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()

	if cached != nil {
		return cached.result, nil
	}
	return s.Run(ctx)
}

// Flow returns the Sankey flow for the cached aggregation
func (s *FunnelService) Flow(ctx context.Context) (*sankey.Flow, error) {
	if _, err := s.Result(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()

	return sankey.Build(cached.result, cached.definition)
}

// Dataset returns the dataset snapshot behind the cached aggregation
func (s *FunnelService) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if _, err := s.Result(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached.dataset, nil
}
