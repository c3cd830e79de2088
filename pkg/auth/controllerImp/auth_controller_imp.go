package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kisan/pkg/apperr"
	"kisan/pkg/auth/service"
	"kisan/pkg/middleware"
	userSvc "kisan/pkg/user/service"
)

type AuthCtrl struct {
	svc   service.AuthService
	users userSvc.UserService
}

func New(svc service.AuthService, users userSvc.UserService) *AuthCtrl {
	return &AuthCtrl{svc: svc, users: users}
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var in service.LoginInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("bad json")
	}
	out, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// WhoAmI returns the caller's current profile.
func (h *AuthCtrl) WhoAmI(c echo.Context) error {
	u, err := h.users.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}
