package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fairflow/internal/errors"
	"fairflow/internal/ridership"
)

// RidershipHandler serves destination rankings from the subway
// origin-destination dataset
type RidershipHandler struct {
	service      RidershipReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRidershipHandler creates a new ridership handler
func NewRidershipHandler(service RidershipReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RidershipHandler {
	return &RidershipHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "ridership_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the ridership routes
func (h *RidershipHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/destinations/top", h.GetTopDestinations)
	r.Get("/destinations/bottom", h.GetBottomDestinations)

	return r
}

// GetTopDestinations handles GET /api/ridership/destinations/top
func (h *RidershipHandler) GetTopDestinations(w http.ResponseWriter, r *http.Request) {
	filter, n, err := parseDestinationQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	flows, err := h.service.TopDestinations(r.Context(), filter, n)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, flows)
}

// GetBottomDestinations handles GET /api/ridership/destinations/bottom
func (h *RidershipHandler) GetBottomDestinations(w http.ResponseWriter, r *http.Request) {
	filter, n, err := parseDestinationQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	flows, err := h.service.BottomDestinations(r.Context(), filter, n)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, flows)
}

// parseDestinationQuery reads the shared filter parameters. Absent
// parameters stay at their zero value and act as wildcards.
func parseDestinationQuery(r *http.Request) (ridership.Filter, int, error) {
	var filter ridership.Filter

	intParam := func(name string) (int, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_PARAMETER",
				"Invalid query parameter", map[string]string{name: raw})
		}
		return v, nil
	}

	var err error
	if filter.HourFrom, err = intParam("hour_from"); err != nil {
		return filter, 0, err
	}
	if filter.HourTo, err = intParam("hour_to"); err != nil {
		return filter, 0, err
	}
	if filter.Month, err = intParam("month"); err != nil {
		return filter, 0, err
	}
	if filter.Year, err = intParam("year"); err != nil {
		return filter, 0, err
	}
	filter.DayOfWeek = r.URL.Query().Get("day_of_week")

	n, err := intParam("n")
	if err != nil {
		return filter, 0, err
	}
	return filter, n, nil
}
