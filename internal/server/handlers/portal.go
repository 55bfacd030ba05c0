package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"learnhub/internal/core"
	viewerrors "learnhub/views/errors"
	"learnhub/views/home"
	"learnhub/views/layout"
)

// Version is reported by the health check
const Version = "1.0.0"

// Pinger checks a backing store
type Pinger interface {
	PingWithTimeout(timeout time.Duration) error
}

// PortalHandler serves the site-wide pages
type PortalHandler struct {
	logger   *core.Logger
	registry *core.Registry
	db       Pinger
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(logger *core.Logger, registry *core.Registry, db Pinger) *PortalHandler {
	return &PortalHandler{
		logger:   logger,
		registry: registry,
		db:       db,
	}
}

// HomeHandler serves the landing page
func (h *PortalHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	component := layout.Page("", r.URL.Path, home.Page())
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render home page", "error", err)
	}
}

// NotFoundHandler serves the styled 404 page
func (h *PortalHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	component := layout.Page("Not found", r.URL.Path, viewerrors.NotFound(r.URL.Path))
	component.Render(r.Context(), w)
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status   string                        `json:"status"`
	Service  string                        `json:"service"`
	Version  string                        `json:"version"`
	Database string                        `json:"database"`
	Features map[string]core.FeatureStatus `json:"features"`
}

// HealthCheckHandler provides a health check endpoint. A failing feature
// marks the site degraded; only an unreachable database fails the check.
func (h *PortalHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Service:  "learnhub",
		Version:  Version,
		Database: "ok",
		Features: h.registry.GetFeatureStatus(ctx),
	}
	if !core.Healthy(resp.Features) {
		resp.Status = "degraded"
	}

	status := http.StatusOK
	if h.db != nil {
		if err := h.db.PingWithTimeout(2 * time.Second); err != nil {
			h.logger.WithContext(r.Context()).Error("Health check database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
