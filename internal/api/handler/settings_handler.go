package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// SettingsHandler serves the display configuration.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type settingsRequest struct {
	SystemName string `json:"systemName" validate:"required"`
	Timezone   string `json:"timezone"   validate:"required"`
	DateFormat string `json:"dateFormat" validate:"required"`
}

// Get handles GET /v1/admin/settings.
//
// @Summary      Get display settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Settings
// @Router       /v1/admin/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.service.GetSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Save handles PUT /v1/admin/settings.
//
// @Summary      Replace display settings
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings document"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/admin/settings [put]
func (h *SettingsHandler) Save(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.service.SaveSettings(c.Request().Context(), actor, domain.Settings{
		SystemName: req.SystemName,
		Timezone:   req.Timezone,
		DateFormat: req.DateFormat,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
