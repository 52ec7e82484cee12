package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairflow/internal/dataset"
	"fairflow/internal/funnel"
)

func testHandler() *ErrorHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewErrorHandler(logger, false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorToProblem(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/funnel", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "invalid funnel definition",
			err:        fmt.Errorf("failed to validate funnel: %w", funnel.ErrInvalidDefinition),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeFunnelInvalid,
		},
		{
			name: "missing funnel column",
			err: &funnel.MissingColumnError{
				Stage:  "awareness",
				Column: dataset.ByName("Q1"),
				Err:    dataset.ErrColumnNotFound,
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeFunnelColumn,
		},
		{
			name:       "dataset column not found",
			err:        fmt.Errorf("resolve: %w", dataset.ErrColumnNotFound),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDatasetColumn,
		},
		{
			name:       "dataset source unavailable",
			err:        fmt.Errorf("open workbook: %w", dataset.ErrSourceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetSource,
		},
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("something odd"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
		})
	}
}

func TestErrorToProblemMissingColumnExtensions(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/funnel", nil)

	err := &funnel.MissingColumnError{
		Stage:  "application",
		Column: dataset.ByIndex(29),
		Err:    dataset.ErrColumnNotFound,
	}

	problem := h.ErrorToProblem(err, r)
	assert.Equal(t, "application", problem.Extensions["stage"])
	assert.Equal(t, dataset.ByIndex(29).String(), problem.Extensions["column"])
}

func TestErrorToProblemAPIError(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/funnel", nil)

	problem := h.ErrorToProblem(ErrInvalidFunnel, r)
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeFunnelInvalid, problem.Type)
	assert.Equal(t, "INVALID_FUNNEL", problem.Extensions["error_code"])
}

func TestHandleError(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/funnel", nil)

	h.HandleError(rec, r, fmt.Errorf("validate: %w", funnel.ErrInvalidDefinition))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeFunnelInvalid, body["type"])
	assert.Equal(t, "/api/funnel", body["instance"])
	assert.Contains(t, body, "trace_id")
}

func TestHandleErrorNil(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, r, nil)
	assert.Empty(t, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/nope", nil)

	h.NotFound(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
}

func TestProblemDetailsMarshalExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeFunnelColumn, "Funnel Column Missing", "no such column", "/api/funnel").
		WithExtension("stage", "awareness")

	raw, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "awareness", body["stage"])
	assert.Equal(t, "no such column", body["detail"])
	assert.EqualValues(t, http.StatusUnprocessableEntity, body["status"])
}
