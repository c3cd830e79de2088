package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/expense/repository"
	"kisan/pkg/owned"
)

type expenseRepo struct {
	*owned.Store[entities.Expense, *entities.Expense]
}

func New(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepo{owned.New[entities.Expense](db, "expense")}
}

func (r *expenseRepo) List(ctx context.Context, uid string) ([]entities.Expense, error) {
	return r.Store.List(ctx, uid, "date DESC, created_at DESC")
}

type incomeRepo struct{ db *gorm.DB }

func NewIncome(db *gorm.DB) repository.IncomeRepository { return &incomeRepo{db} }

func (r *incomeRepo) Income(ctx context.Context, uid string) (entities.Income, error) {
	var in entities.Income
	err := r.db.WithContext(ctx).Where("user_id = ?", uid).First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Income{UserID: uid}, nil
	}
	if err != nil {
		return entities.Income{}, apperr.Internal("load income", err)
	}
	return in, nil
}

func (r *incomeRepo) SaveIncome(ctx context.Context, in *entities.Income) error {
	if err := r.db.WithContext(ctx).Save(in).Error; err != nil {
		return apperr.Internal("save income", err)
	}
	return nil
}
