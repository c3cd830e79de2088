package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/scheme/repository"
)

type schemeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SchemeRepository { return &schemeRepo{db} }

func (r *schemeRepo) Active(ctx context.Context, category string) ([]entities.Scheme, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	out := []entities.Scheme{}
	if err := q.Order("deadline IS NULL").Order("deadline ASC").Order("title ASC").Find(&out).Error; err != nil {
		return nil, apperr.Internal("list schemes", err)
	}
	return out, nil
}

func (r *schemeRepo) Get(ctx context.Context, id string) (*entities.Scheme, error) {
	var s entities.Scheme
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("scheme not found")
	}
	if err != nil {
		return nil, apperr.Internal("get scheme", err)
	}
	return &s, nil
}

func (r *schemeRepo) Create(ctx context.Context, s *entities.Scheme) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return apperr.Internal("create scheme", err)
	}
	return nil
}
