package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kisan/entities"
)

func TestSeasonAt(t *testing.T) {
	want := map[time.Month]string{
		time.January: "rabi", time.February: "rabi", time.March: "rabi",
		time.April: "zaid", time.May: "zaid",
		time.June: "kharif", time.July: "kharif", time.August: "kharif", time.September: "kharif", time.October: "kharif",
		time.November: "rabi", time.December: "rabi",
	}
	for m, season := range want {
		assert.Equal(t, season, SeasonAt(time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC)), m.String())
	}
}

func TestInSeason(t *testing.T) {
	assert.True(t, InSeason(entities.SeasonPerennial, entities.SeasonZaid))
	assert.True(t, InSeason(entities.SeasonKharif, entities.SeasonKharif))
	assert.False(t, InSeason(entities.SeasonRabi, entities.SeasonKharif))
}

func TestWeatherClassification(t *testing.T) {
	hotRain := &entities.WeatherSnapshot{Condition: ConditionRainy, Temperature: entities.Temperature{Current: 31}}
	assert.True(t, IsRainy(hotRain))
	assert.True(t, IsHot(hotRain))

	mild := &entities.WeatherSnapshot{Condition: ConditionSunny, Temperature: entities.Temperature{Current: 30}}
	assert.False(t, IsRainy(mild))
	assert.False(t, IsHot(mild), "threshold is strictly greater than 30")

	assert.False(t, IsRainy(&entities.WeatherSnapshot{Condition: ConditionStormy}))
	assert.False(t, IsRainy(nil))
	assert.False(t, IsHot(nil))
}

func TestConditionFromWMO(t *testing.T) {
	cases := map[int]string{0: "sunny", 2: "cloudy", 45: "foggy", 61: "rainy", 80: "rainy", 95: "stormy", 99: "stormy"}
	for code, want := range cases {
		assert.Equal(t, want, ConditionFromWMO(code), "code %d", code)
	}
}
