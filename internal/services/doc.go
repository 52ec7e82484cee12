// Package services implements the business logic layer between the HTTP
// handlers and the analysis packages.
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// FunnelService loads the survey dataset from the configured source and
// runs the funnel aggregation. RidershipService loads the subway
// origin-destination exports and serves destination rankings.
// HealthService reports process and data-source health.
package services
