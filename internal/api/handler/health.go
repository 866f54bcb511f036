package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

// HealthHandler reports process liveness and readiness.
type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

type readinessResponse struct {
	Status   string `json:"status"`
	Users    int    `json:"users"`
	Channels int    `json:"channels"`
	Sessions int    `json:"sessions"`
}

// Liveness handles GET /health: is the process alive?
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. The only dependency is the in-process
// store, so readiness reports its registry sizes alongside the status.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	stats := h.store.Stats()
	return c.JSON(http.StatusOK, readinessResponse{
		Status:   "ok",
		Users:    stats.Users,
		Channels: stats.Channels,
		Sessions: stats.Tokens,
	})
}
