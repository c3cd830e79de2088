package serviceImp

import (
	"context"
	"strings"
	"time"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/owned"
	repo "kisan/pkg/task/repository"
	"kisan/pkg/task/service"
	"kisan/pkg/validate"
)

type taskSvc struct{ r repo.TaskRepository }

func NewTaskService(r repo.TaskRepository) service.TaskService { return &taskSvc{r} }

func (s *taskSvc) List(ctx context.Context, uid, from, to string) ([]entities.Task, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = owned.ParseDate("from", from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if end, err = owned.ParseDate("to", to); err != nil {
			return nil, err
		}
		// inclusive of the whole final day
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return s.r.List(ctx, uid, start, end)
}

func (s *taskSvc) Create(ctx context.Context, uid string, in service.TaskInput) (*entities.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	date, err := owned.ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	t := &entities.Task{
		UserID:      uid,
		FarmID:      in.FarmID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Date:        date,
		Time:        in.Time,
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Status == "" {
		t.Status = entities.TaskPending
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskSvc) Update(ctx context.Context, uid, id string, patch service.TaskPatch) (*entities.Task, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	var date time.Time
	if patch.Date != nil {
		d, err := owned.ParseDate("date", *patch.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}
	return s.r.Update(ctx, uid, id, func(t *entities.Task) error {
		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
			if t.Title == "" {
				return apperr.Validation("title is required")
			}
		}
		if patch.Description != nil {
			t.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if patch.Date != nil {
			t.Date = date
		}
		if patch.Time != nil {
			t.Time = *patch.Time
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.FarmID != nil {
			t.FarmID = *patch.FarmID
		}
		return nil
	})
}

func (s *taskSvc) Delete(ctx context.Context, uid, id string) error {
	return s.r.Delete(ctx, uid, id)
}
