package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/farm/repository"
	"kisan/pkg/owned"
)

type farmRepo struct {
	*owned.Store[entities.Farm, *entities.Farm]
}

func New(db *gorm.DB) repository.FarmRepository {
	return &farmRepo{owned.New[entities.Farm](db, "farm")}
}

func (r *farmRepo) List(ctx context.Context, uid string) ([]entities.Farm, error) {
	return r.Store.List(ctx, uid, "created_at DESC")
}

func (r *farmRepo) Count(ctx context.Context, uid, status string) (int64, error) {
	if status == "" {
		return r.Store.Count(ctx, uid)
	}
	return r.Store.Count(ctx, uid, func(q *gorm.DB) *gorm.DB { return q.Where("status = ?", status) })
}
