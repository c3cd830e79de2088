package service

import (
	"context"

	"kisan/entities"
)

type TaskInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,oneof=planting harvesting irrigation fertilizing pestControl pruning weeding other"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string `json:"status" validate:"omitempty,oneof=pending inProgress completed"`
	FarmID      string `json:"farmId"`
}

type TaskPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof=planting harvesting irrigation fertilizing pestControl pruning weeding other"`
	Date        *string `json:"date"`
	Time        *string `json:"time" validate:"omitempty,datetime=15:04"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending inProgress completed"`
	FarmID      *string `json:"farmId"`
}

type TaskService interface {
	// List takes optional YYYY-MM-DD bounds.
	List(ctx context.Context, uid, from, to string) ([]entities.Task, error)
	Create(ctx context.Context, uid string, in TaskInput) (*entities.Task, error)
	Update(ctx context.Context, uid, id string, patch TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, uid, id string) error
}
