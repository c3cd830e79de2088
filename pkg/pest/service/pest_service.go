package service

import (
	"context"

	"kisan/entities"
	"kisan/pkg/ai"
)

type CropIssues struct {
	Success      bool                   `json:"success"`
	Pests        []entities.PestDisease `json:"pests"`
	Diseases     []entities.PestDisease `json:"diseases"`
	Deficiencies []entities.PestDisease `json:"deficiencies"`
	Total        int                    `json:"total"`
}

type ReportInput struct {
	Name          string   `json:"name" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=pest disease deficiency"`
	AffectedCrops []string `json:"affectedCrops" validate:"required,min=1,dive,required"`
	Symptoms      []string `json:"symptoms"`
	Location      string   `json:"location"`
	Images        []string `json:"images"`
}

const (
	PestDetected = "pest_detected"
	Healthy      = "healthy"
)

// Identification is what a crop photo was classified as, plus any catalog
// entries that share the diagnosed name.
type Identification struct {
	Type       string                 `json:"type"` // pest_detected|healthy
	Name       string                 `json:"name,omitempty"`
	Confidence float64                `json:"confidence"`
	Details    string                 `json:"details,omitempty"`
	Treatment  []string               `json:"treatment,omitempty"`
	Matches    []entities.PestDisease `json:"matches"`
}

// Classifier is satisfied by both the Plant.id client and ai.Advisor.
type Classifier interface {
	ClassifyPestImage(ctx context.Context, image []byte, mime string) (*ai.PestDiagnosis, error)
}

type PestService interface {
	ByCrop(ctx context.Context, crop string) (*CropIssues, error)
	Search(ctx context.Context, q string) ([]entities.PestDisease, error)
	Report(ctx context.Context, uid string, in ReportInput) (*entities.PestDisease, error)
	Identify(ctx context.Context, image []byte) (*Identification, error)
}
