package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/farm/service"
	"kisan/pkg/middleware"
)

type FarmCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) *FarmCtrl { return &FarmCtrl{svc} }

func (h *FarmCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmCtrl) Get(c echo.Context) error {
	f, err := h.svc.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FarmCtrl) Create(c echo.Context) error {
	var in service.FarmInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	f, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmCtrl) Update(c echo.Context) error {
	var patch service.FarmPatch
	if err := c.Bind(&patch); err != nil {
		return apperr.Validation("bad json")
	}
	f, err := h.svc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FarmCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "farm deleted"})
}
