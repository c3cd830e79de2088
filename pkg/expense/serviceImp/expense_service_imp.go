package serviceImp

import (
	"context"
	"strings"
	"time"

	"kisan/entities"
	"kisan/pkg/apperr"
	repo "kisan/pkg/expense/repository"
	"kisan/pkg/expense/service"
	"kisan/pkg/owned"
	"kisan/pkg/validate"
)

type expenseSvc struct {
	expenses repo.ExpenseRepository
	income   repo.IncomeRepository
	now      func() time.Time
}

func NewExpenseService(expenses repo.ExpenseRepository, income repo.IncomeRepository) service.ExpenseService {
	return &expenseSvc{expenses: expenses, income: income, now: time.Now}
}

func (s *expenseSvc) List(ctx context.Context, uid string) ([]entities.Expense, error) {
	return s.expenses.List(ctx, uid)
}

func (s *expenseSvc) Create(ctx context.Context, uid string, in service.ExpenseInput) (*entities.Expense, error) {
	in.Item = strings.TrimSpace(in.Item)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	date, err := owned.ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	e := &entities.Expense{
		UserID:      uid,
		FarmID:      in.FarmID,
		Category:    in.Category,
		Item:        in.Item,
		Amount:      in.Amount,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *expenseSvc) Update(ctx context.Context, uid, id string, patch service.ExpensePatch) (*entities.Expense, error) {
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
	return s.expenses.Update(ctx, uid, id, func(e *entities.Expense) error {
		if patch.Category != nil {
			e.Category = *patch.Category
		}
		if patch.Item != nil {
			e.Item = strings.TrimSpace(*patch.Item)
			if e.Item == "" {
				return apperr.Validation("item is required")
			}
		}
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		if patch.Date != nil {
			e.Date = date
		}
		if patch.Description != nil {
			e.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.FarmID != nil {
			e.FarmID = *patch.FarmID
		}
		return nil
	})
}

func (s *expenseSvc) Delete(ctx context.Context, uid, id string) error {
	return s.expenses.Delete(ctx, uid, id)
}

func (s *expenseSvc) Income(ctx context.Context, uid string) (entities.Income, error) {
	return s.income.Income(ctx, uid)
}

func (s *expenseSvc) SetIncome(ctx context.Context, uid string, in service.IncomeInput) (entities.Income, error) {
	if err := validate.Struct(in); err != nil {
		return entities.Income{}, err
	}
	rec := entities.Income{UserID: uid, CropSales: in.CropSales, OtherIncome: in.OtherIncome, UpdatedAt: s.now()}
	if err := s.income.SaveIncome(ctx, &rec); err != nil {
		return entities.Income{}, err
	}
	return rec, nil
}

func (s *expenseSvc) Summary(ctx context.Context, uid string) (service.Summary, error) {
	list, err := s.expenses.List(ctx, uid)
	if err != nil {
		return service.Summary{}, err
	}
	inc, err := s.income.Income(ctx, uid)
	if err != nil {
		return service.Summary{}, err
	}
	out := service.Summary{ByCategory: map[string]float64{}, Count: len(list)}
	for _, e := range list {
		out.TotalExpenses += e.Amount
		out.ByCategory[e.Category] += e.Amount
	}
	out.TotalIncome = inc.CropSales + inc.OtherIncome
	out.NetProfit = out.TotalIncome - out.TotalExpenses
	return out, nil
}
