package service

import (
	"context"

	"kisan/entities"
)

type SchemeInput struct {
	Title              string           `json:"title" validate:"required"`
	Description        string           `json:"description" validate:"required"`
	Department         string           `json:"department"`
	Eligibility        []string         `json:"eligibility"`
	Benefits           []string         `json:"benefits"`
	DocumentsRequired  []string         `json:"documentsRequired"`
	ApplicationProcess []string         `json:"applicationProcess"`
	Deadline           string           `json:"deadline"`
	Contact            entities.Contact `json:"contact"`
	Category           string           `json:"category" validate:"required,oneof=subsidy loan insurance training equipment"`
	State              string           `json:"state"`
	Active             *bool            `json:"active"`
}

// EligibilityInput leaves a figure nil when the farmer did not give it;
// a nil figure never matches.
type EligibilityInput struct {
	LandSize     *float64 `json:"landSize" validate:"omitempty,gte=0"`
	AnnualIncome *float64 `json:"annualIncome" validate:"omitempty,gte=0"`
	Category     string   `json:"category" validate:"omitempty,oneof=subsidy loan insurance training equipment"`
}

type SchemeList struct {
	Success bool              `json:"success"`
	Schemes []entities.Scheme `json:"schemes"`
	Total   int               `json:"total"`
}

type Eligible struct {
	SchemeList
	Filters EligibilityInput `json:"filters"`
}

type SchemeService interface {
	List(ctx context.Context, category string) (*SchemeList, error)
	Get(ctx context.Context, id string) (*entities.Scheme, error)
	Create(ctx context.Context, in SchemeInput) (*entities.Scheme, error)
	Eligible(ctx context.Context, in EligibilityInput) (*Eligible, error)
}
