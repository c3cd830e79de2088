package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/middleware"
	"kisan/pkg/task/service"
)

type TaskCtrl struct{ svc service.TaskService }

func New(svc service.TaskService) *TaskCtrl { return &TaskCtrl{svc} }

func (h *TaskCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TaskCtrl) Create(c echo.Context) error {
	var in service.TaskInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	t, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TaskCtrl) Patch(c echo.Context) error {
	var patch service.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return apperr.Validation("bad json")
	}
	t, err := h.svc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}
