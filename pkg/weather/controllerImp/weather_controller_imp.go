package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	"kisan/pkg/logger"
	"kisan/pkg/weather"
)

type WeatherCtrl struct{ p weather.Provider }

func New(p weather.Provider) *WeatherCtrl { return &WeatherCtrl{p} }

// Get answers 404 both for an unknown district and for an unreachable
// upstream; the client shows the same empty state for either.
func (h *WeatherCtrl) Get(c echo.Context) error {
	district := strings.TrimSpace(c.Param("district"))
	if district == "" {
		return apperr.Validation("district is required")
	}
	snap, err := h.p.Lookup(c.Request().Context(), district)
	if err != nil {
		logger.L().Info("weather lookup failed", zap.String("district", district), zap.Error(err))
		return apperr.NotFound("weather data not found for " + district)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "weather": snap})
}
