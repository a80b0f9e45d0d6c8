package http

import (
	"net/http"

	"github.com/go-chi/render"

	"advancecli/internal/services"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	svc *services.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(svc *services.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// GetHealth returns basic health status
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.svc.Check())
}
