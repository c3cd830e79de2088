package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/apperr"
	"kisan/pkg/logger"
)

// ErrorHandler writes every failure as {"error": msg}. Internal errors are
// logged in full and answered with a generic message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := statusOf(err)

	if status >= 500 {
		logger.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, map[string]string{"error": msg})
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok || he.Code >= 500 {
			msg = http.StatusText(he.Code)
		}
		return he.Code, msg
	}
	return apperr.KindOf(err).Status(), apperr.Public(err)
}
