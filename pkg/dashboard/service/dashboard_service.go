package service

import (
	"context"

	"kisan/entities"
)

type Summary struct {
	Farms struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"farms"`
	PendingTasks   int64                     `json:"pendingTasks"`
	UnreadMessages int64                     `json:"unreadMessages"`
	District       string                    `json:"district,omitempty"`
	Weather        *entities.WeatherSnapshot `json:"weather,omitempty"`
}

type DashboardService interface {
	Summary(ctx context.Context, uid string) (*Summary, error)
}
