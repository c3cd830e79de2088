package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/middleware"
	"kisan/pkg/user/service"
)

type UserCtrl struct{ svc service.UserService }

func New(svc service.UserService) *UserCtrl { return &UserCtrl{svc} }

func (h *UserCtrl) Get(c echo.Context) error {
	u, err := h.svc.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserCtrl) Update(c echo.Context) error {
	var patch service.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return apperr.Validation("bad json")
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), middleware.UserID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "profile updated", "user": u})
}

func (h *UserCtrl) Delete(c echo.Context) error {
	if err := h.svc.DeleteAccount(c.Request().Context(), middleware.UserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}
