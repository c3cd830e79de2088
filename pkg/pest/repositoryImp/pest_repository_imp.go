package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/catalog"
	"kisan/pkg/pest/repository"
)

type pestRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PestRepository { return &pestRepo{db} }

func (r *pestRepo) find(ctx context.Context, what string, where string, args ...any) ([]entities.PestDisease, error) {
	out := []entities.PestDisease{}
	if err := r.db.WithContext(ctx).Where(where, args...).Order("name ASC").Find(&out).Error; err != nil {
		return nil, apperr.Internal(what, err)
	}
	return out, nil
}

// affected_crops is stored as a JSON array, so a substring match over the
// encoded text is enough.
func (r *pestRepo) ByCrop(ctx context.Context, crop string) ([]entities.PestDisease, error) {
	return r.find(ctx, "pests by crop", `LOWER(affected_crops) LIKE ? ESCAPE '\'`, catalog.Contains(crop))
}

func (r *pestRepo) Search(ctx context.Context, q string) ([]entities.PestDisease, error) {
	pat := catalog.Contains(q)
	return r.find(ctx, "search pests",
		`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(local_name) LIKE ? ESCAPE '\' OR LOWER(symptoms) LIKE ? ESCAPE '\'`,
		pat, pat, pat)
}

func (r *pestRepo) ByName(ctx context.Context, name string) ([]entities.PestDisease, error) {
	pat := catalog.Contains(name)
	return r.find(ctx, "pests by name", `LOWER(name) LIKE ? ESCAPE '\' OR LOWER(local_name) LIKE ? ESCAPE '\'`, pat, pat)
}

func (r *pestRepo) Create(ctx context.Context, p *entities.PestDisease) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperr.Internal("report pest", err)
	}
	return nil
}
