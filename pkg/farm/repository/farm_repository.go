package repository

import (
	"context"

	"kisan/entities"
)

type FarmRepository interface {
	List(ctx context.Context, uid string) ([]entities.Farm, error)
	Create(ctx context.Context, f *entities.Farm) error
	Get(ctx context.Context, uid, id string) (*entities.Farm, error)
	Update(ctx context.Context, uid, id string, apply func(*entities.Farm) error) (*entities.Farm, error)
	Delete(ctx context.Context, uid, id string) error
	// Count counts the caller's farms, optionally only those in status.
	Count(ctx context.Context, uid, status string) (int64, error)
}
