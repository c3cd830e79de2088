package serviceImp

import (
	"sort"
	"strings"

	"kisan/entities"
	"kisan/pkg/climate"
	"kisan/pkg/crop/service"
)

// Weights are the additive terms of the suitability score.
type Weights struct {
	Base     int
	Soil     int // crop tolerates the requested soil
	Water    int // crop's water need equals what is available
	Rain     int // rainy weather and a high-water crop
	Heat     int // hot weather and a high-water crop
	Easy     int
	Hard     int
	Min, Max int
}

var DefaultWeights = Weights{Base: 50, Soil: 20, Water: 15, Rain: 10, Heat: -5, Easy: 10, Hard: -5, Min: 0, Max: 100}

// Score is pure: the same crop, inputs and weather always give the same
// value, clamped to [w.Min, w.Max].
func Score(w Weights, c entities.Crop, soil, water string, snap *entities.WeatherSnapshot) int {
	score := w.Base
	for _, s := range c.SuitableSoil {
		if strings.EqualFold(s, soil) {
			score += w.Soil
			break
		}
	}
	if water != "" && strings.EqualFold(c.WaterRequirements, water) {
		score += w.Water
	}
	if snap != nil && c.WaterRequirements == "high" {
		if climate.IsRainy(snap) {
			score += w.Rain
		}
		if climate.IsHot(snap) {
			score += w.Heat
		}
	}
	switch c.Difficulty {
	case "easy":
		score += w.Easy
	case "hard":
		score += w.Hard
	}
	return clamp(score, w.Min, w.Max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Suitability(score int) string {
	switch {
	case score >= 80:
		return "Highly Suitable"
	case score >= 60:
		return "Suitable"
	case score >= 40:
		return "Moderately Suitable"
	}
	return "Less Suitable"
}

// Rank scores every crop and orders by score, then in-season first, then name.
func Rank(w Weights, crops []entities.Crop, soil, water, season string, snap *entities.WeatherSnapshot) []service.Recommendation {
	out := make([]service.Recommendation, 0, len(crops))
	for _, c := range crops {
		s := Score(w, c, soil, water, snap)
		out = append(out, service.Recommendation{
			Crop:                c,
			RecommendationScore: s,
			Suitability:         Suitability(s),
			InSeason:            climate.InSeason(c.Season, season),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RecommendationScore != b.RecommendationScore {
			return a.RecommendationScore > b.RecommendationScore
		}
		if a.InSeason != b.InSeason {
			return a.InSeason
		}
		return a.Name < b.Name
	})
	return out
}
