package repository

import (
	"context"

	"kisan/entities"
)

type ExpenseRepository interface {
	// List returns the caller's expenses newest first.
	List(ctx context.Context, uid string) ([]entities.Expense, error)
	Create(ctx context.Context, e *entities.Expense) error
	Update(ctx context.Context, uid, id string, apply func(*entities.Expense) error) (*entities.Expense, error)
	Delete(ctx context.Context, uid, id string) error
}

type IncomeRepository interface {
	// Income returns the caller's record, zero-valued if none exists yet.
	Income(ctx context.Context, uid string) (entities.Income, error)
	SaveIncome(ctx context.Context, in *entities.Income) error
}
