package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kisan/pkg/logger"
)

func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler settle the status before we read it
				c.Error(err)
			}
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("uid", UserID(c)),
			}
			if res.Status >= 500 {
				logger.L().Error("request", fields...)
			} else {
				logger.L().Info("request", fields...)
			}
			return nil
		}
	}
}
