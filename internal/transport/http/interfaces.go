package http

import (
	"context"

	"fairflow/internal/ridership"
	"fairflow/internal/sankey"
	"fairflow/internal/services"
	"fairflow/pkg/contracts/domain"
)

// FunnelReader is the service surface the funnel handler depends on
type FunnelReader interface {
	Result(ctx context.Context) (*domain.FunnelResult, error)
	Run(ctx context.Context) (*domain.FunnelResult, error)
	Flow(ctx context.Context) (*sankey.Flow, error)
}

// RidershipReader is the service surface the ridership handler depends on
type RidershipReader interface {
	TopDestinations(ctx context.Context, filter ridership.Filter, n int) ([]domain.StationFlow, error)
	BottomDestinations(ctx context.Context, filter ridership.Filter, n int) ([]domain.StationFlow, error)
}

// HealthChecker is the service surface the health handler depends on
type HealthChecker interface {
	Check(ctx context.Context) services.HealthStatus
}
