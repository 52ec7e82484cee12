package funnel

import (
	"context"
	"fmt"
	"log/slog"

	"fairflow/internal/dataset"
	"fairflow/pkg/contracts/domain"
)

// Aggregator runs funnel definitions against dataset snapshots. It is
// stateless apart from its logger and safe to reuse across calls.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to the
// default slog logger.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger: logger.With(slog.String("component", "funnel_aggregator")),
	}
}

// Aggregate tabulates the dataset through the definition's stage chain and
// returns the complete funnel, or an error and no result at all. The caller
// must not mutate the dataset for the duration of the call.
func (a *Aggregator) Aggregate(ctx context.Context, d *dataset.Dataset, def Definition) (*domain.FunnelResult, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	// Resolve every selector up front so a broken stage aborts the call
	// before any counting happens.
	cols := make([]int, len(def.Stages))
	for i, stage := range def.Stages {
		col, err := d.Resolve(stage.Column)
		if err != nil {
			return nil, &MissingColumnError{Stage: stage.Name, Column: stage.Column, Err: err}
		}
		cols[i] = col
	}

	a.logger.InfoContext(ctx, "aggregating funnel",
		slog.String("definition", def.Name),
		slog.Int("rows", d.RowCount()),
		slog.Int("stages", len(def.Stages)))

	eligible := make([]int, d.RowCount())
	for i := range eligible {
		eligible[i] = i
	}

	result := &domain.FunnelResult{
		Definition: def.Name,
		GrandTotal: d.RowCount(),
		Stages:     make([]domain.StageResult, 0, len(def.Stages)),
	}

	for i, stage := range def.Stages {
		counts := make(map[string]int, len(stage.Categories))
		declared := make(map[string]struct{}, len(stage.Categories))
		for _, c := range stage.Categories {
			declared[c] = struct{}{}
		}

		var next []int
		for _, row := range eligible {
			// Exact, case-sensitive match against the literal response
			// codes. Blank cells never match a category.
			value := d.Value(row, cols[i])
			if _, ok := declared[value]; ok {
				counts[value]++
			}
			if stage.Continue != "" && value == stage.Continue {
				next = append(next, row)
			}
		}

		sr := domain.StageResult{
			Stage:      stage.Name,
			Total:      len(eligible),
			Categories: make([]domain.CategoryCount, 0, len(stage.Categories)),
		}
		named := 0
		for _, c := range stage.Categories {
			sr.Categories = append(sr.Categories, domain.CategoryCount{Category: c, Count: counts[c]})
			named += counts[c]
		}
		sr.Residual = sr.Total - named
		if sr.Residual < 0 {
			// Cannot happen while categories partition the eligible set,
			// but a negative residual means the counts are inconsistent
			// and must never be clamped away.
			return nil, fmt.Errorf("data consistency fault at stage %q: named counts %d exceed total %d",
				stage.Name, named, sr.Total)
		}

		a.logger.DebugContext(ctx, "stage tabulated",
			slog.String("stage", stage.Name),
			slog.Int("total", sr.Total),
			slog.Int("residual", sr.Residual))

		result.Stages = append(result.Stages, sr)
		eligible = next
	}

	return result, nil
}
