// Package weather looks up current conditions for a district.
package weather

import (
	"context"
	"errors"

	"kisan/entities"
)

// ErrUnknownDistrict is returned when geocoding finds no match.
var ErrUnknownDistrict = errors.New("district not found")

type Provider interface {
	Lookup(ctx context.Context, district string) (*entities.WeatherSnapshot, error)
}
