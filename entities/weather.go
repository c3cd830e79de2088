package entities

import "time"

type WeatherSnapshot struct {
	District    string      `json:"district"`
	Temperature Temperature `json:"temperature"`
	Humidity    float64     `json:"humidity"`
	Rainfall    float64     `json:"rainfall"`
	Condition   string      `json:"condition"` // sunny|cloudy|rainy|stormy|foggy
	ObservedAt  time.Time   `json:"observedAt"`
}

type Temperature struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}
