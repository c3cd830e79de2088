package repository

import (
	"context"

	"kisan/entities"
)

type CropRepository interface {
	// All returns the catalog ordered by name.
	All(ctx context.Context) ([]entities.Crop, error)
	Get(ctx context.Context, id string) (*entities.Crop, error)
	// Search matches name or local name, case-insensitively.
	Search(ctx context.Context, q string) ([]entities.Crop, error)
}
