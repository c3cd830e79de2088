package service

import (
	"context"
	"io"
	"strings"

	"kisan/entities"
)

const categories = "seeds fertilizers pesticides labor equipment irrigation transport landRent other"

type ExpenseInput struct {
	Category    string  `json:"category" validate:"required,oneof=seeds fertilizers pesticides labor equipment irrigation transport landRent other"`
	Item        string  `json:"item" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description"`
	FarmID      string  `json:"farmId"`
}

type ExpensePatch struct {
	Category    *string  `json:"category" validate:"omitempty,oneof=seeds fertilizers pesticides labor equipment irrigation transport landRent other"`
	Item        *string  `json:"item" validate:"omitempty,min=1"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	FarmID      *string  `json:"farmId"`
}

type IncomeInput struct {
	CropSales   float64 `json:"cropSales" validate:"gte=0"`
	OtherIncome float64 `json:"otherIncome" validate:"gte=0"`
}

type Summary struct {
	TotalExpenses float64            `json:"totalExpenses"`
	ByCategory    map[string]float64 `json:"byCategory"`
	TotalIncome   float64            `json:"totalIncome"`
	NetProfit     float64            `json:"netProfit"`
	Count         int                `json:"count"`
}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

type ExpenseService interface {
	List(ctx context.Context, uid string) ([]entities.Expense, error)
	Create(ctx context.Context, uid string, in ExpenseInput) (*entities.Expense, error)
	Update(ctx context.Context, uid, id string, patch ExpensePatch) (*entities.Expense, error)
	Delete(ctx context.Context, uid, id string) error

	Income(ctx context.Context, uid string) (entities.Income, error)
	SetIncome(ctx context.Context, uid string, in IncomeInput) (entities.Income, error)
	Summary(ctx context.Context, uid string) (Summary, error)
	Export(ctx context.Context, uid string, f Format, w io.Writer) error
}

// Categories lists every accepted expense category in display order.
func Categories() []string { return strings.Fields(categories) }
