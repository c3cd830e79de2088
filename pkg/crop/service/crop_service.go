package service

import (
	"context"

	"kisan/entities"
	"kisan/pkg/ai"
)

type RecommendInput struct {
	SoilType          string `json:"soilType" validate:"omitempty,oneof=clay sandy loamy laterite alluvial"`
	WaterAvailability string `json:"waterAvailability" validate:"omitempty,oneof=low medium high"`
	District          string `json:"district"`
	Season            string `json:"season" validate:"omitempty,oneof=kharif rabi zaid perennial"`
	FarmID            string `json:"farmId"`
}

type Recommendation struct {
	entities.Crop
	RecommendationScore int    `json:"recommendationScore"`
	Suitability         string `json:"suitability"`
	InSeason            bool   `json:"inSeason"`
}

type Filters struct {
	SoilType          string `json:"soilType"`
	WaterAvailability string `json:"waterAvailability"`
	District          string `json:"district,omitempty"`
	Season            string `json:"season"`
}

type Recommendations struct {
	Success         bool                      `json:"success"`
	Recommendations []Recommendation          `json:"recommendations"`
	Filters         Filters                   `json:"filters"`
	Weather         *entities.WeatherSnapshot `json:"weather,omitempty"`
}

type CropService interface {
	Recommend(ctx context.Context, uid string, in RecommendInput) (*Recommendations, error)
	Advice(ctx context.Context, uid string, in RecommendInput) (*ai.CropAdvice, error)
	Catalog(ctx context.Context) ([]entities.Crop, error)
	Get(ctx context.Context, id string) (*entities.Crop, error)
	Search(ctx context.Context, q string) ([]entities.Crop, error)
}
