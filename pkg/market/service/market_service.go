package service

import (
	"context"
	"time"

	"kisan/entities"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

type PriceQuery struct {
	Crop     string
	District string
	Limit    int
}

type CropAnalysis struct {
	Prices  []entities.MarketPrice `json:"prices"`
	Average float64                `json:"average"`
	Trend   string                 `json:"trend"`
}

type PriceBoard struct {
	Success     bool                    `json:"success"`
	Prices      []entities.MarketPrice  `json:"prices"`
	Analysis    map[string]CropAnalysis `json:"analysis"`
	LastUpdated time.Time               `json:"lastUpdated"`
}

type Point struct {
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
	Market   string    `json:"market"`
	District string    `json:"district"`
}

type TrendSummary struct {
	CurrentPrice float64 `json:"currentPrice"`
	AveragePrice float64 `json:"averagePrice"`
	PriceChange  float64 `json:"priceChange"`
	DataPoints   int     `json:"dataPoints"`
}

type Trend struct {
	Success bool         `json:"success"`
	Crop    string       `json:"crop"`
	Period  string       `json:"period"`
	Data    []Point      `json:"data"`
	Summary TrendSummary `json:"summary"`
}

type PriceInput struct {
	CropName string  `json:"cropName" validate:"required"`
	District string  `json:"district" validate:"required"`
	Market   string  `json:"market" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
	MinPrice float64 `json:"minPrice" validate:"gte=0"`
	MaxPrice float64 `json:"maxPrice" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Quality  string  `json:"quality"`
	Date     string  `json:"date"`
	Source   string  `json:"source"`
}

type ImportResult struct {
	Success  bool   `json:"success"`
	Source   string `json:"source"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

type MarketService interface {
	Prices(ctx context.Context, q PriceQuery) (*PriceBoard, error)
	Trends(ctx context.Context, crop string, days int) (*Trend, error)
	Add(ctx context.Context, in PriceInput) (*entities.MarketPrice, error)
	Import(ctx context.Context, rawURL string) (*ImportResult, error)
}
