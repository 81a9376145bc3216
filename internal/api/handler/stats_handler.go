package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perfhub/performance-system/internal/core/ports"
)

// StatsHandler serves the dashboard snapshot.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Dashboard handles GET /v1/goals/stats.
//
// @Summary      Dashboard statistics for the caller's scope
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardSnapshot
// @Router       /v1/goals/stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	snap, err := h.service.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
