package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairflow/internal/config"
	"fairflow/internal/ridership"
)

const surveyCSV = `Respondent,Heard,Applied,Accepted,Helped
1,Yes,Yes,Yes,Yes
2,Yes,Yes,No,
3,Yes,No,,
4,Yes,,,
5,No,,,
6,No,,,
7,Maybe,,,
`

const funnelYAML = `name: test_funnel
skip_rows: 0
stages:
  - name: awareness
    column: Heard
    categories: ["Yes", "No"]
    continue: "Yes"
  - name: application
    column: Applied
    categories: ["Yes", "No"]
    continue: "Yes"
  - name: acceptance
    column: Accepted
    categories: ["Yes", "No"]
`

const ridershipCSV = `Year,Month,Day of Week,Hour of Day,Origin Station Complex ID,Origin Station Complex Name,Origin Latitude,Origin Longitude,Destination Station Complex ID,Destination Station Complex Name,Destination Latitude,Destination Longitude,Estimated Average Ridership
2024,8,Monday,8,400,68 St-Hunter College,40.768,-73.964,610,Grand Central-42 St,40.752,-73.977,120.5
2024,8,Monday,9,400,68 St-Hunter College,40.768,-73.964,611,Times Sq-42 St,40.755,-73.987,45.0
2024,8,Tuesday,8,400,68 St-Hunter College,40.768,-73.964,610,Grand Central-42 St,40.752,-73.977,60.0
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEnv(t *testing.T) (*config.Config, *config.Paths) {
	t.Helper()
	dir := t.TempDir()

	surveyPath := filepath.Join(dir, "survey.csv")
	require.NoError(t, os.WriteFile(surveyPath, []byte(surveyCSV), 0644))

	funnelPath := filepath.Join(dir, "funnel.yaml")
	require.NoError(t, os.WriteFile(funnelPath, []byte(funnelYAML), 0644))

	ridershipPath := filepath.Join(dir, "ridership.csv")
	require.NoError(t, os.WriteFile(ridershipPath, []byte(ridershipCSV), 0644))

	cfg := config.Default()
	cfg.Survey.File = surveyPath
	cfg.Survey.FunnelFile = funnelPath
	cfg.Ridership.Files = []string{ridershipPath}
	cfg.Ridership.TopN = 2

	paths := &config.Paths{
		ExecutableDir: dir,
		DataDir:       filepath.Join(dir, "data"),
		ReportsDir:    filepath.Join(dir, "reports"),
	}
	return cfg, paths
}

func TestFunnelServiceRun(t *testing.T) {
	cfg, paths := testEnv(t)
	svc, err := NewFunnelService(cfg, paths, discardLogger())
	require.NoError(t, err)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test_funnel", result.Definition)
	assert.Equal(t, 7, result.GrandTotal)

	awareness, ok := result.Stage("awareness")
	require.True(t, ok)
	assert.Equal(t, 4, awareness.Count("Yes"))
	assert.Equal(t, 2, awareness.Count("No"))
	assert.Equal(t, 1, awareness.Residual)

	application, ok := result.Stage("application")
	require.True(t, ok)
	assert.Equal(t, 4, application.Total)
	assert.Equal(t, 2, application.Count("Yes"))
	assert.Equal(t, 1, application.Count("No"))
	assert.Equal(t, 1, application.Residual)
}

func TestFunnelServiceResultCaches(t *testing.T) {
	cfg, paths := testEnv(t)
	svc, err := NewFunnelService(cfg, paths, discardLogger())
	require.NoError(t, err)

	first, err := svc.Result(context.Background())
	require.NoError(t, err)

	// Removing the file must not affect the cached snapshot
	require.NoError(t, os.Remove(cfg.Survey.File))

	second, err := svc.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFunnelServiceFlow(t *testing.T) {
	cfg, paths := testEnv(t)
	svc, err := NewFunnelService(cfg, paths, discardLogger())
	require.NoError(t, err)

	flow, err := svc.Flow(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, flow.Nodes)
	assert.Equal(t, "Total Responses", flow.Nodes[0].Label)
	assert.NotEmpty(t, flow.Links)
}

func TestFunnelServiceMissingFile(t *testing.T) {
	cfg, paths := testEnv(t)
	cfg.Survey.File = filepath.Join(paths.ExecutableDir, "nope.csv")

	svc, err := NewFunnelService(cfg, paths, discardLogger())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	assert.Error(t, err)
}

func TestRidershipServiceTopDestinations(t *testing.T) {
	cfg, paths := testEnv(t)
	svc := NewRidershipService(cfg, paths, discardLogger())

	top, err := svc.TopDestinations(context.Background(), ridership.Filter{}, 0)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Grand Central-42 St", top[0].StationName)
	assert.InDelta(t, 180.5, top[0].Ridership, 0.001)
	assert.Equal(t, "Times Sq-42 St", top[1].StationName)
}

func TestRidershipServiceFilter(t *testing.T) {
	cfg, paths := testEnv(t)
	svc := NewRidershipService(cfg, paths, discardLogger())

	top, err := svc.TopDestinations(context.Background(), ridership.Filter{DayOfWeek: "Tuesday"}, 0)
	require.NoError(t, err)

	require.Len(t, top, 1)
	assert.Equal(t, "Grand Central-42 St", top[0].StationName)
	assert.InDelta(t, 60.0, top[0].Ridership, 0.001)
}

func TestRidershipServiceNoFiles(t *testing.T) {
	cfg, paths := testEnv(t)
	cfg.Ridership.Files = nil
	svc := NewRidershipService(cfg, paths, discardLogger())

	_, err := svc.Records(context.Background())
	assert.Error(t, err)
}

func TestRidershipServiceDiscoversExports(t *testing.T) {
	cfg, paths := testEnv(t)
	cfg.Ridership.Files = nil

	require.NoError(t, os.MkdirAll(paths.DataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.DataDir, "ridership_2024.csv"), []byte(ridershipCSV), 0644))

	svc := NewRidershipService(cfg, paths, discardLogger())
	records, err := svc.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestHealthServiceCheck(t *testing.T) {
	cfg, paths := testEnv(t)
	require.NoError(t, os.MkdirAll(paths.ReportsDir, 0755))

	svc := NewHealthService("1.0.0", cfg, paths, discardLogger())
	status := svc.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Equal(t, "ok", status.Checks["survey_data"].Status)
}

func TestHealthServiceDegraded(t *testing.T) {
	cfg, paths := testEnv(t)
	cfg.Survey.File = filepath.Join(paths.ExecutableDir, "gone.xlsx")

	svc := NewHealthService("1.0.0", cfg, paths, discardLogger())
	status := svc.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "degraded", status.Checks["survey_data"].Status)
}
