package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/entities"
)

func TestSeedIsIdempotent(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	first, err := Seed(db, now)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Crops)
	assert.Positive(t, first.Pests)
	assert.Positive(t, first.Schemes)
	assert.Positive(t, first.MarketPrices)

	second, err := Seed(db, now)
	require.NoError(t, err)
	assert.Equal(t, SeedCounts{}, second)

	var rice entities.Crop
	require.NoError(t, db.Where("name = ?", "Rice").First(&rice).Error)
	assert.Equal(t, []string{"clay", "loamy"}, rice.SuitableSoil)
	assert.Equal(t, "high", rice.WaterRequirements)
	assert.NotEmpty(t, rice.ID)

	var price entities.MarketPrice
	require.NoError(t, db.Where("crop_name = ?", "Rice").Order("date asc").First(&price).Error)
	assert.Equal(t, now.AddDate(0, 0, -7).Unix(), price.Date.Unix())
}

func TestUniqueEmailTranslated(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "uniq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&entities.User{Name: "A", Email: "a@example.com"}).Error)
	err = db.Create(&entities.User{Name: "B", Email: "a@example.com"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
}
