package controllerImp

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/middleware"
	"kisan/pkg/pest/service"
	"kisan/pkg/pest/serviceImp"
)

type PestCtrl struct{ svc service.PestService }

func New(svc service.PestService) *PestCtrl { return &PestCtrl{svc} }

func (h *PestCtrl) ByCrop(c echo.Context) error {
	out, err := h.svc.ByCrop(c.Request().Context(), c.Param("cropName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PestCtrl) Search(c echo.Context) error {
	out, err := h.svc.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "issues": out})
}

func (h *PestCtrl) Report(c echo.Context) error {
	var in service.ReportInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	p, err := h.svc.Report(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Issue reported successfully. Our experts will review it.",
		"report":  p,
	})
}

// Identify expects a multipart form with the photo in field "image".
func (h *PestCtrl) Identify(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return apperr.Validation("image is required")
	}
	if fh.Size > serviceImp.MaxImageBytes {
		return apperr.Validation("image is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.Validation("image is unreadable")
	}
	defer f.Close()
	img, err := io.ReadAll(io.LimitReader(f, serviceImp.MaxImageBytes+1))
	if err != nil {
		return apperr.Validation("image is unreadable")
	}
	out, err := h.svc.Identify(c.Request().Context(), img)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "result": out})
}
