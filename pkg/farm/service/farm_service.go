package service

import (
	"context"

	"kisan/entities"
)

type SizeInput struct {
	Value float64 `json:"value" validate:"gte=0"`
	Unit  string  `json:"unit" validate:"omitempty,oneof=acres hectares"`
}

type FarmInput struct {
	FarmName string    `json:"farmName" validate:"required"`
	Location string    `json:"location" validate:"required"`
	CropType string    `json:"cropType"`
	SoilType string    `json:"soilType" validate:"omitempty,oneof=clay sandy loamy laterite alluvial"`
	District string    `json:"district"`
	Size     SizeInput `json:"size"`
	Status   string    `json:"status" validate:"omitempty,oneof=active inactive harvested"`
}

// FarmPatch carries only the fields the client sent.
type FarmPatch struct {
	FarmName *string    `json:"farmName" validate:"omitempty,min=1"`
	Location *string    `json:"location" validate:"omitempty,min=1"`
	CropType *string    `json:"cropType"`
	SoilType *string    `json:"soilType" validate:"omitempty,oneof=clay sandy loamy laterite alluvial"`
	District *string    `json:"district"`
	Size     *SizeInput `json:"size"`
	Status   *string    `json:"status" validate:"omitempty,oneof=active inactive harvested"`
}

type FarmService interface {
	List(ctx context.Context, uid string) ([]entities.Farm, error)
	Get(ctx context.Context, uid, id string) (*entities.Farm, error)
	Create(ctx context.Context, uid string, in FarmInput) (*entities.Farm, error)
	Update(ctx context.Context, uid, id string, patch FarmPatch) (*entities.Farm, error)
	Delete(ctx context.Context, uid, id string) error
}
