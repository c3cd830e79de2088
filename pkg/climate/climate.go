// Package climate holds the calendar and weather rules used by crop
// recommendation: the sowing season for a date and how a current
// conditions snapshot is classified.
package climate

import (
	"time"

	"kisan/entities"
)

// HotThreshold is the current temperature (°C) above which high-water crops
// are penalised.
const HotThreshold = 30.0

// SeasonAt maps a calendar month to its sowing season:
// June–October kharif, November–March rabi, April–May zaid.
func SeasonAt(t time.Time) string {
	m := t.Month()
	switch {
	case m >= time.June && m <= time.October:
		return entities.SeasonKharif
	case m >= time.November || m <= time.March:
		return entities.SeasonRabi
	}
	return entities.SeasonZaid
}

// InSeason reports whether a crop of cropSeason can be planted in season.
// Perennials always can.
func InSeason(cropSeason, season string) bool {
	return cropSeason == entities.SeasonPerennial || cropSeason == season
}

// IsRainy matches only the "rainy" condition; storms earn no bonus.
func IsRainy(w *entities.WeatherSnapshot) bool {
	return w != nil && w.Condition == ConditionRainy
}

func IsHot(w *entities.WeatherSnapshot) bool {
	return w != nil && w.Temperature.Current > HotThreshold
}

const (
	ConditionSunny  = "sunny"
	ConditionCloudy = "cloudy"
	ConditionRainy  = "rainy"
	ConditionStormy = "stormy"
	ConditionFoggy  = "foggy"
)

// ConditionFromWMO folds a WMO weather interpretation code (as reported
// by Open-Meteo) into the five conditions the client renders.
func ConditionFromWMO(code int) string {
	switch {
	case code <= 1:
		return ConditionSunny
	case code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFoggy
	case code >= 95:
		return ConditionStormy
	case code >= 51 && code <= 86:
		return ConditionRainy
	}
	return ConditionCloudy
}
