package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/catalog"
	"kisan/pkg/market/repository"
)

type marketRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MarketRepository { return &marketRepo{db} }

func (r *marketRepo) Latest(ctx context.Context, crop, district string, limit int) ([]entities.MarketPrice, error) {
	q := r.db.WithContext(ctx).Model(&entities.MarketPrice{})
	if crop != "" {
		q = q.Where(`LOWER(crop_name) LIKE ? ESCAPE '\'`, catalog.Contains(crop))
	}
	if district != "" {
		q = q.Where(`LOWER(district) LIKE ? ESCAPE '\'`, catalog.Contains(district))
	}
	out := []entities.MarketPrice{}
	if err := q.Order("date DESC").Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, apperr.Internal("list market prices", err)
	}
	return out, nil
}

func (r *marketRepo) Since(ctx context.Context, crop string, since time.Time) ([]entities.MarketPrice, error) {
	out := []entities.MarketPrice{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(crop_name) LIKE ? ESCAPE '\' AND date >= ?`, catalog.Contains(crop), since).
		Order("date ASC").Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("price trend", err)
	}
	return out, nil
}

func (r *marketRepo) Create(ctx context.Context, prices ...*entities.MarketPrice) error {
	if len(prices) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(prices).Error; err != nil {
		return apperr.Internal("save market prices", err)
	}
	return nil
}
