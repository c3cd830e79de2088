package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kisan/pkg/logger"
)

var appStart = time.Now()

var errNoDB = errors.New("gorm db is nil")

var features = []string{
	"Authentication",
	"Farm Management",
	"Weather Data",
	"Crop Recommendations",
	"Pest & Disease Database",
	"Market Prices",
	"Government Schemes",
	"Expense Tracking",
	"Task Calendar",
	"Farmer Chat",
}

// Check pings one dependency.
type Check func(ctx context.Context) error

type HealthCtrl struct {
	db     *gorm.DB
	checks map[string]Check
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl {
	return &HealthCtrl{db: db, checks: map[string]Check{}}
}

// With adds an optional dependency such as redis or mongo.
func (h *HealthCtrl) With(name string, c Check) *HealthCtrl {
	h.checks[name] = c
	return h
}

func (h *HealthCtrl) pingDB(ctx context.Context) error {
	if h.db == nil {
		return errNoDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// sub carries no error text: the route is public.
type sub struct {
	OK bool `json:"ok"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	all := map[string]Check{"database": h.pingDB}
	for k, v := range h.checks {
		all[k] = v
	}
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)

	allOK := true
	checks := map[string]sub{}
	for _, name := range names {
		s := sub{OK: true}
		if err := all[name](ctx); err != nil {
			logger.L().Warn("health check failed", zap.String("check", name), zap.Error(err))
			s = sub{}
			allOK = false
		}
		checks[name] = s
	}

	status, label := http.StatusOK, "OK"
	if !allOK {
		status, label = http.StatusServiceUnavailable, "DEGRADED"
	}
	return c.JSON(status, map[string]any{
		"status":     label,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"features":   features,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
