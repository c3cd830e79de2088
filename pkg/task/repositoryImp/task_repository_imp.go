package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/owned"
	"kisan/pkg/task/repository"
)

type taskRepo struct {
	*owned.Store[entities.Task, *entities.Task]
}

func New(db *gorm.DB) repository.TaskRepository {
	return &taskRepo{owned.New[entities.Task](db, "task")}
}

func (r *taskRepo) List(ctx context.Context, uid string, from, to time.Time) ([]entities.Task, error) {
	window := func(q *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			q = q.Where("date >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("date <= ?", to)
		}
		return q
	}
	return r.Store.List(ctx, uid, "date ASC, time ASC", window)
}

func (r *taskRepo) CountByStatus(ctx context.Context, uid, status string) (int64, error) {
	return r.Store.Count(ctx, uid, func(q *gorm.DB) *gorm.DB { return q.Where("status = ?", status) })
}
