package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/market/service"
)

type MarketCtrl struct{ svc service.MarketService }

func New(svc service.MarketService) *MarketCtrl { return &MarketCtrl{svc} }

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name + " must be a number")
	}
	return n, nil
}

// Prices handles GET /market/prices?crop=&district=&limit=
func (h *MarketCtrl) Prices(c echo.Context) error {
	limit, err := intParam(c.QueryParam("limit"), "limit")
	if err != nil {
		return err
	}
	out, err := h.svc.Prices(c.Request().Context(), service.PriceQuery{
		Crop:     c.QueryParam("crop"),
		District: c.QueryParam("district"),
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketCtrl) Trends(c echo.Context) error {
	days, err := intParam(c.Param("days"), "days")
	if err != nil {
		return err
	}
	out, err := h.svc.Trends(c.Request().Context(), c.Param("cropName"), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketCtrl) Add(c echo.Context) error {
	var in service.PriceInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	p, err := h.svc.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "price": p})
}

func (h *MarketCtrl) Import(c echo.Context) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return apperr.Validation("url required")
	}
	out, err := h.svc.Import(c.Request().Context(), body.URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}
