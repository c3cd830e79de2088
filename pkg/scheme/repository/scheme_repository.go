package repository

import (
	"context"

	"kisan/entities"
)

type SchemeRepository interface {
	// Active lists active schemes by nearest deadline; open-ended ones last.
	Active(ctx context.Context, category string) ([]entities.Scheme, error)
	Get(ctx context.Context, id string) (*entities.Scheme, error)
	Create(ctx context.Context, s *entities.Scheme) error
}
