package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "fairflow/internal/errors"
	"fairflow/internal/sankey"
)

// FunnelHandler serves funnel aggregation results
type FunnelHandler struct {
	service      FunnelReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFunnelHandler creates a new funnel handler
func NewFunnelHandler(service FunnelReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FunnelHandler {
	return &FunnelHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "funnel_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the funnel routes
func (h *FunnelHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Group(func(r chi.Router) {
		r.Get("/", h.GetResult)
		r.Post("/refresh", h.Refresh)
		r.Get("/flow", h.GetFlow)
	})
	r.Get("/sankey", h.GetSankey)

	return r
}

// GetResult handles GET /api/funnel
func (h *FunnelHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// Refresh handles POST /api/funnel/refresh and re-runs the aggregation
// against the current dataset.
func (h *FunnelHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "refreshing funnel aggregation",
		slog.String("request_id", middleware.GetReqID(r.Context())))

	result, err := h.service.Run(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// GetFlow handles GET /api/funnel/flow and returns the Sankey node/link
// layout as JSON.
func (h *FunnelHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := h.service.Flow(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, flow)
}

// GetSankey handles GET /api/funnel/sankey and serves the rendered
// diagram page.
func (h *FunnelHandler) GetSankey(w http.ResponseWriter, r *http.Request) {
	flow, err := h.service.Flow(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sankey.WriteHTML(w, flow); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render sankey page",
			slog.String("error", err.Error()))
	}
}
