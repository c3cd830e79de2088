package repository

import (
	"context"
	"time"

	"kisan/entities"
)

type TaskRepository interface {
	// List returns tasks in date order, bounded by from/to when non-zero.
	List(ctx context.Context, uid string, from, to time.Time) ([]entities.Task, error)
	Create(ctx context.Context, t *entities.Task) error
	Update(ctx context.Context, uid, id string, apply func(*entities.Task) error) (*entities.Task, error)
	Delete(ctx context.Context, uid, id string) error
	CountByStatus(ctx context.Context, uid, status string) (int64, error)
}
