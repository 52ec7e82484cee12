package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"fairflow/internal/config"
	"fairflow/internal/infrastructure"
	"fairflow/internal/services"
)

func testApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	paths := &config.Paths{ExecutableDir: t.TempDir()}

	funnelService, err := services.NewFunnelService(cfg, paths, logger)
	require.NoError(t, err)

	app := &Application{
		Config: cfg,
		Paths:  paths,
		Logger: logger,
		OTelProviders: &infrastructure.OTelProviders{
			Tracer: otel.Tracer("test"),
			Meter:  otel.Meter("test"),
			Logger: logger,
		},
		FunnelService:    funnelService,
		RidershipService: services.NewRidershipService(cfg, paths, logger),
		HealthService:    services.NewHealthService(Version, cfg, paths, logger),
	}
	app.setupRouter()
	app.setupServer()
	return app
}

func TestRouterLiveness(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRouterNotFound(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/not-found")
}

func TestRouterSecurityHeaders(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServerConfiguration(t *testing.T) {
	app := testApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
}
