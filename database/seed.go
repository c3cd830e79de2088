package database

import (
	_ "embed"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/logger"
)

//go:embed seed/catalog.yaml
var catalogYAML []byte

type catalog struct {
	Crops        []entities.Crop        `yaml:"crops"`
	Pests        []entities.PestDisease `yaml:"pests"`
	Schemes      []entities.Scheme      `yaml:"schemes"`
	MarketPrices []entities.MarketPrice `yaml:"marketPrices"`
}

// SeedCounts reports how many rows each collection received.
type SeedCounts struct {
	Crops, Pests, Schemes, MarketPrices int
}

// Seed loads the embedded reference catalog. Each table is filled only
// while empty, so running it twice changes nothing.
func Seed(db *gorm.DB, now time.Time) (SeedCounts, error) {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return SeedCounts{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	for i := range c.MarketPrices {
		c.MarketPrices[i].Date = now.AddDate(0, 0, -c.MarketPrices[i].DaysAgo)
	}

	var out SeedCounts
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if out.Crops, err = seedIfEmpty(tx, &entities.Crop{}, c.Crops); err != nil {
			return fmt.Errorf("seed crops: %w", err)
		}
		if out.Pests, err = seedIfEmpty(tx, &entities.PestDisease{}, c.Pests); err != nil {
			return fmt.Errorf("seed pests: %w", err)
		}
		if out.Schemes, err = seedIfEmpty(tx, &entities.Scheme{}, c.Schemes); err != nil {
			return fmt.Errorf("seed schemes: %w", err)
		}
		if out.MarketPrices, err = seedIfEmpty(tx, &entities.MarketPrice{}, c.MarketPrices); err != nil {
			return fmt.Errorf("seed market prices: %w", err)
		}
		return nil
	})
	if err != nil {
		return SeedCounts{}, err
	}
	logger.L().Info("catalog seeded",
		zap.Int("crops", out.Crops),
		zap.Int("pests", out.Pests),
		zap.Int("schemes", out.Schemes),
		zap.Int("marketPrices", out.MarketPrices),
	)
	return out, nil
}

func seedIfEmpty[T any](tx *gorm.DB, model any, rows []T) (int, error) {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 || len(rows) == 0 {
		return 0, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
