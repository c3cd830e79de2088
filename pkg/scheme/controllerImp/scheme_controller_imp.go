package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/scheme/service"
)

type SchemeCtrl struct{ svc service.SchemeService }

func New(svc service.SchemeService) *SchemeCtrl { return &SchemeCtrl{svc} }

func (h *SchemeCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SchemeCtrl) Get(c echo.Context) error {
	sc, err := h.svc.Get(c.Request().Context(), c.Param("schemeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "scheme": sc})
}

func (h *SchemeCtrl) Create(c echo.Context) error {
	var in service.SchemeInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	sc, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "scheme": sc})
}

func (h *SchemeCtrl) Eligible(c echo.Context) error {
	var in service.EligibilityInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.Eligible(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
