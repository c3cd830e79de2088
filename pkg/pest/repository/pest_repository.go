package repository

import (
	"context"

	"kisan/entities"
)

type PestRepository interface {
	// ByCrop returns every issue whose affected crops mention crop.
	ByCrop(ctx context.Context, crop string) ([]entities.PestDisease, error)
	Search(ctx context.Context, q string) ([]entities.PestDisease, error)
	// ByName matches only on name and local name.
	ByName(ctx context.Context, name string) ([]entities.PestDisease, error)
	Create(ctx context.Context, p *entities.PestDisease) error
}
