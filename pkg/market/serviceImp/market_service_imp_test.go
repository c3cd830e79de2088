package serviceImp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/market/repositoryImp"
	"kisan/pkg/market/scrape"
	"kisan/pkg/market/service"
)

var today = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

type fakeImporter struct {
	rows []scrape.Row
	err  error
}

func (f fakeImporter) Fetch(context.Context, string) ([]scrape.Row, int, error) { return f.rows, 1, f.err }

func newSvc(t *testing.T, imp Importer) *marketSvc {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	_, err = database.Seed(db, today)
	require.NoError(t, err)
	svc := NewMarketService(repositoryImp.New(db), imp).(*marketSvc)
	svc.now = func() time.Time { return today }
	return svc
}

func TestAnalyze(t *testing.T) {
	p := func(crop string, price float64) entities.MarketPrice {
		return entities.MarketPrice{CropName: crop, Price: price}
	}
	got := Analyze([]entities.MarketPrice{p("Rice", 34), p("Rice", 30), p("Rice", 26), p("Coconut", 20), p("Coconut", 25), p("Rubber", 160)})
	assert.Equal(t, service.TrendIncreasing, got["Rice"].Trend)
	assert.InDelta(t, 30, got["Rice"].Average, 1e-9)
	assert.Equal(t, service.TrendDecreasing, got["Coconut"].Trend)
	assert.Equal(t, service.TrendStable, got["Rubber"].Trend)
	assert.Len(t, got["Rice"].Prices, 3)
}

func TestPricesFiltersAndDefaults(t *testing.T) {
	svc := newSvc(t, nil)
	ctx := context.Background()

	all, err := svc.Prices(ctx, service.PriceQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Prices, 6)
	assert.Equal(t, today, all.LastUpdated)
	for i := 1; i < len(all.Prices); i++ {
		assert.False(t, all.Prices[i].Date.After(all.Prices[i-1].Date))
	}

	rice, err := svc.Prices(ctx, service.PriceQuery{Crop: "rice", District: "thris"})
	require.NoError(t, err)
	require.Len(t, rice.Prices, 2)
	assert.Equal(t, service.TrendIncreasing, rice.Analysis["Rice"].Trend)
	assert.InDelta(t, 33.5, rice.Analysis["Rice"].Average, 1e-9)

	one, err := svc.Prices(ctx, service.PriceQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, one.Prices, 1)

	_, err = svc.Prices(ctx, service.PriceQuery{Limit: -3})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestTrends(t *testing.T) {
	svc := newSvc(t, nil)
	ctx := context.Background()

	tr, err := svc.Trends(ctx, "Coconut", 0)
	require.NoError(t, err)
	assert.Equal(t, "30 days", tr.Period)
	require.Len(t, tr.Data, 2)
	assert.True(t, tr.Data[0].Date.Before(tr.Data[1].Date))
	assert.Equal(t, service.TrendSummary{CurrentPrice: 24, AveragePrice: 25, PriceChange: -2, DataPoints: 2}, tr.Summary)

	short, err := svc.Trends(ctx, "Coconut", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, short.Summary.DataPoints)

	none, err := svc.Trends(ctx, "Saffron", 30)
	require.NoError(t, err)
	assert.Zero(t, none.Summary)
	assert.NotNil(t, none.Data)

	_, err = svc.Trends(ctx, "Rice", 1000)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdd(t *testing.T) {
	svc := newSvc(t, nil)
	ctx := context.Background()

	p, err := svc.Add(ctx, service.PriceInput{CropName: "Banana", District: "Wayanad", Market: "Kalpetta", Price: 32, Date: "2026-08-19"})
	require.NoError(t, err)
	assert.Equal(t, "INR/kg", p.Unit)
	assert.Equal(t, 19, p.Date.Day())

	_, err = svc.Add(ctx, service.PriceInput{CropName: "Banana", District: "Wayanad", Market: "Kalpetta", Price: 0})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.Add(ctx, service.PriceInput{CropName: "Banana", District: "Wayanad", Market: "Kalpetta", Price: 30, MinPrice: 40, MaxPrice: 35})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestImport(t *testing.T) {
	imp := fakeImporter{rows: []scrape.Row{
		{Crop: "Rice", District: "Palakkad", Market: "Alathur", Min: 2800, Max: 3400, Modal: 3100},
		{Crop: "Banana", District: "Wayanad", Market: "Kalpetta", Min: 2500, Max: 3300, Modal: 3000},
	}}
	svc := newSvc(t, imp)
	ctx := context.Background()

	res, err := svc.Import(ctx, "https://agmarknet.gov.in/prices?state=KL")
	require.NoError(t, err)
	assert.Equal(t, &service.ImportResult{Success: true, Source: "agmarknet.gov.in", Imported: 2, Skipped: 1}, res)

	board, err := svc.Prices(ctx, service.PriceQuery{District: "palakkad"})
	require.NoError(t, err)
	require.Len(t, board.Prices, 1)
	assert.Equal(t, "INR/quintal", board.Prices[0].Unit)
	assert.Equal(t, 3100.0, board.Prices[0].Price)

	_, err = newSvc(t, nil).Import(ctx, "https://agmarknet.gov.in/")
	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))

	_, err = newSvc(t, fakeImporter{err: apperr.Forbidden("domain not allowed")}).Import(ctx, "https://evil.example/")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
