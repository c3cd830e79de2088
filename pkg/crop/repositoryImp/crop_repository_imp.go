package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/catalog"
	"kisan/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) All(ctx context.Context) ([]entities.Crop, error) {
	out := []entities.Crop{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, apperr.Internal("list crops", err)
	}
	return out, nil
}

func (r *cropRepo) Get(ctx context.Context, id string) (*entities.Crop, error) {
	var c entities.Crop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("crop not found")
	}
	if err != nil {
		return nil, apperr.Internal("get crop", err)
	}
	return &c, nil
}

func (r *cropRepo) Search(ctx context.Context, q string) ([]entities.Crop, error) {
	out := []entities.Crop{}
	pat := catalog.Contains(q)
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(local_name) LIKE ? ESCAPE '\'`, pat, pat).
		Order("name ASC").Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("search crops", err)
	}
	return out, nil
}
