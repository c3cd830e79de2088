package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/dashboard/service"
	"kisan/pkg/middleware"
)

type DashboardCtrl struct{ svc service.DashboardService }

func New(svc service.DashboardService) *DashboardCtrl { return &DashboardCtrl{svc} }

func (h *DashboardCtrl) Get(c echo.Context) error {
	out, err := h.svc.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
