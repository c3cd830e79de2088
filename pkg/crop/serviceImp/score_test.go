package serviceImp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/entities"
)

func crop(name, season, water, difficulty string, soils ...string) entities.Crop {
	return entities.Crop{Name: name, Season: season, WaterRequirements: water, Difficulty: difficulty, SuitableSoil: soils}
}

var catalog = []entities.Crop{
	crop("Rice", "kharif", "high", "medium", "clay", "loamy"),
	crop("Coconut", "perennial", "medium", "easy", "sandy", "laterite", "loamy"),
	crop("Rubber", "perennial", "high", "medium", "laterite", "loamy"),
	crop("Black Pepper", "perennial", "medium", "medium", "laterite", "loamy"),
	crop("Banana", "perennial", "high", "easy", "loamy", "alluvial"),
	crop("Saffron", "rabi", "low", "hard", "sandy"),
}

func TestScoreTerms(t *testing.T) {
	w := DefaultWeights
	rainyHot := &entities.WeatherSnapshot{Condition: "rainy", Temperature: entities.Temperature{Current: 34}}

	cases := []struct {
		name  string
		crop  entities.Crop
		soil  string
		water string
		snap  *entities.WeatherSnapshot
		want  int
	}{
		{"base only", crop("X", "zaid", "low", "medium"), "clay", "high", nil, 50},
		{"soil", crop("X", "zaid", "low", "medium", "Clay"), "clay", "high", nil, 70},
		{"water", crop("X", "zaid", "medium", "medium"), "clay", "medium", nil, 65},
		{"easy", crop("X", "zaid", "low", "easy"), "clay", "high", nil, 60},
		{"hard", crop("X", "zaid", "low", "hard"), "clay", "high", nil, 45},
		{"rain and heat on high water", crop("X", "zaid", "high", "medium"), "clay", "low", rainyHot, 55},
		{"storm earns no rain bonus", crop("X", "zaid", "high", "medium"), "clay", "low", &entities.WeatherSnapshot{Condition: "stormy"}, 50},
		{"weather ignored for low water", crop("X", "zaid", "low", "medium"), "clay", "high", rainyHot, 50},
		{"everything", crop("X", "zaid", "high", "easy", "loamy"), "loamy", "high", &entities.WeatherSnapshot{Condition: "rainy"}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(w, tc.crop, tc.soil, tc.water, tc.snap))
		})
	}
}

func TestScoreClamps(t *testing.T) {
	harsh := Weights{Base: 10, Soil: 20, Water: 15, Rain: 10, Heat: -40, Easy: 10, Hard: -60, Min: 0, Max: 100}
	hot := &entities.WeatherSnapshot{Condition: "sunny", Temperature: entities.Temperature{Current: 45}}
	assert.Equal(t, 0, Score(harsh, crop("X", "zaid", "high", "hard", "sandy"), "clay", "low", hot))

	generous := Weights{Base: 90, Soil: 20, Water: 15, Easy: 10, Min: 0, Max: 100}
	assert.Equal(t, 100, Score(generous, crop("X", "zaid", "low", "easy", "clay"), "clay", "low", nil))
}

func TestSuitabilityBands(t *testing.T) {
	assert.Equal(t, "Highly Suitable", Suitability(80))
	assert.Equal(t, "Suitable", Suitability(79))
	assert.Equal(t, "Suitable", Suitability(60))
	assert.Equal(t, "Moderately Suitable", Suitability(59))
	assert.Equal(t, "Moderately Suitable", Suitability(40))
	assert.Equal(t, "Less Suitable", Suitability(39))
}

func TestRankIsDeterministicAndSorted(t *testing.T) {
	snap := &entities.WeatherSnapshot{Condition: "rainy", Temperature: entities.Temperature{Current: 32}}
	first := Rank(DefaultWeights, catalog, "loamy", "medium", "kharif", snap)
	require.Len(t, first, len(catalog))

	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].RecommendationScore, first[i].RecommendationScore)
	}

	shuffled := append([]entities.Crop(nil), catalog...)
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 5; n++ {
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		again := Rank(DefaultWeights, shuffled, "loamy", "medium", "kharif", snap)
		for i := range first {
			assert.Equal(t, first[i].Name, again[i].Name)
			assert.Equal(t, first[i].RecommendationScore, again[i].RecommendationScore)
		}
	}
}

func TestRankTieBreaksInSeasonFirst(t *testing.T) {
	out := Rank(DefaultWeights, catalog, "loamy", "medium", "kharif", nil)
	byName := map[string]int{}
	for i, r := range out {
		byName[r.Name] = i
	}
	// Rice and Rubber both score 70; both are in season (kharif, perennial) so name decides.
	assert.Equal(t, 70, out[byName["Rice"]].RecommendationScore)
	assert.Equal(t, 70, out[byName["Rubber"]].RecommendationScore)
	assert.Less(t, byName["Rice"], byName["Rubber"])
	assert.False(t, out[byName["Saffron"]].InSeason)
}
