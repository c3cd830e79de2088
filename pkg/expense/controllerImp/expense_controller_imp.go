package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/expense/service"
	"kisan/pkg/middleware"
)

type ExpenseCtrl struct{ svc service.ExpenseService }

func New(svc service.ExpenseService) *ExpenseCtrl { return &ExpenseCtrl{svc} }

func (h *ExpenseCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseCtrl) Create(c echo.Context) error {
	var in service.ExpenseInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	e, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *ExpenseCtrl) Update(c echo.Context) error {
	var patch service.ExpensePatch
	if err := c.Bind(&patch); err != nil {
		return apperr.Validation("bad json")
	}
	e, err := h.svc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExpenseCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "expense deleted"})
}

func (h *ExpenseCtrl) Summary(c echo.Context) error {
	out, err := h.svc.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseCtrl) GetIncome(c echo.Context) error {
	out, err := h.svc.Income(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseCtrl) PutIncome(c echo.Context) error {
	var in service.IncomeInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.SetIncome(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseCtrl) Export(c echo.Context) error {
	f := service.Format(c.QueryParam("format"))
	if f == "" {
		f = service.FormatXLSX
	}
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request().Context(), middleware.UserID(c), f, &buf); err != nil {
		return err
	}
	ctype := "text/csv"
	if f == service.FormatXLSX {
		ctype = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	name := fmt.Sprintf("farm-expenses-%s.%s", time.Now().Format("2006-01-02"), f)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, ctype, buf.Bytes())
}
