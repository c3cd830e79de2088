package repository

import (
	"context"
	"time"

	"kisan/entities"
)

type MarketRepository interface {
	// Latest returns up to limit prices, newest first. Empty filters match all.
	Latest(ctx context.Context, crop, district string, limit int) ([]entities.MarketPrice, error)
	// Since returns prices for crop dated on or after since, oldest first.
	Since(ctx context.Context, crop string, since time.Time) ([]entities.MarketPrice, error)
	Create(ctx context.Context, prices ...*entities.MarketPrice) error
}
