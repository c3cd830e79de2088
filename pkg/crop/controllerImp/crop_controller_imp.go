package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/crop/service"
	"kisan/pkg/middleware"
)

type CropCtrl struct{ svc service.CropService }

func New(svc service.CropService) *CropCtrl { return &CropCtrl{svc} }

func (h *CropCtrl) Recommend(c echo.Context) error {
	var in service.RecommendInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.Recommend(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Advice(c echo.Context) error {
	var in service.RecommendInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.Advice(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "advice": out})
}

func (h *CropCtrl) List(c echo.Context) error {
	out, err := h.svc.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "crops": out})
}

func (h *CropCtrl) Get(c echo.Context) error {
	out, err := h.svc.Get(c.Request().Context(), c.Param("cropId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "crop": out})
}

func (h *CropCtrl) Search(c echo.Context) error {
	out, err := h.svc.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "crops": out})
}
