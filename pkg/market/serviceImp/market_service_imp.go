package serviceImp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/logger"
	repo "kisan/pkg/market/repository"
	"kisan/pkg/market/scrape"
	"kisan/pkg/market/service"
	"kisan/pkg/owned"
	"kisan/pkg/validate"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	DefaultDays  = 30
	MaxDays      = 365

	// Mandi tables quote per quintal.
	importUnit = "INR/quintal"
)

// Importer fetches price rows from a remote table.
type Importer interface {
	Fetch(ctx context.Context, rawURL string) ([]scrape.Row, int, error)
}

type marketSvc struct {
	prices   repo.MarketRepository
	importer Importer
	now      func() time.Time
}

func NewMarketService(prices repo.MarketRepository, importer Importer) service.MarketService {
	return &marketSvc{prices: prices, importer: importer, now: time.Now}
}

func (s *marketSvc) Prices(ctx context.Context, q service.PriceQuery) (*service.PriceBoard, error) {
	switch {
	case q.Limit == 0:
		q.Limit = DefaultLimit
	case q.Limit < 0:
		return nil, apperr.Validation("limit must be positive")
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	prices, err := s.prices.Latest(ctx, strings.TrimSpace(q.Crop), strings.TrimSpace(q.District), q.Limit)
	if err != nil {
		return nil, err
	}
	return &service.PriceBoard{
		Success:     true,
		Prices:      prices,
		Analysis:    Analyze(prices),
		LastUpdated: s.now(),
	}, nil
}

// Analyze groups newest-first prices by crop. The trend compares the two
// newest points of each crop.
func Analyze(prices []entities.MarketPrice) map[string]service.CropAnalysis {
	out := map[string]service.CropAnalysis{}
	for _, p := range prices {
		a := out[p.CropName]
		a.Prices = append(a.Prices, p)
		out[p.CropName] = a
	}
	for name, a := range out {
		sum := 0.0
		for _, p := range a.Prices {
			sum += p.Price
		}
		a.Average = sum / float64(len(a.Prices))
		a.Trend = service.TrendStable
		if len(a.Prices) >= 2 {
			recent, previous := a.Prices[0].Price, a.Prices[1].Price
			switch {
			case recent > previous:
				a.Trend = service.TrendIncreasing
			case recent < previous:
				a.Trend = service.TrendDecreasing
			}
		}
		out[name] = a
	}
	return out
}

func (s *marketSvc) Trends(ctx context.Context, crop string, days int) (*service.Trend, error) {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		return nil, apperr.Validation("crop name is required")
	}
	switch {
	case days == 0:
		days = DefaultDays
	case days < 0 || days > MaxDays:
		return nil, apperr.Validation(fmt.Sprintf("days must be between 1 and %d", MaxDays))
	}
	rows, err := s.prices.Since(ctx, crop, s.now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	out := &service.Trend{
		Success: true,
		Crop:    crop,
		Period:  fmt.Sprintf("%d days", days),
		Data:    make([]service.Point, 0, len(rows)),
	}
	sum := 0.0
	for _, p := range rows {
		out.Data = append(out.Data, service.Point{Date: p.Date, Price: p.Price, Market: p.Market, District: p.District})
		sum += p.Price
	}
	if n := len(rows); n > 0 {
		out.Summary = service.TrendSummary{
			CurrentPrice: rows[n-1].Price,
			AveragePrice: sum / float64(n),
			PriceChange:  rows[n-1].Price - rows[0].Price,
			DataPoints:   n,
		}
	}
	return out, nil
}

func (s *marketSvc) Add(ctx context.Context, in service.PriceInput) (*entities.MarketPrice, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	date := s.now()
	if in.Date != "" {
		d, err := owned.ParseDate("date", in.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}
	if in.MaxPrice > 0 && in.MinPrice > in.MaxPrice {
		return nil, apperr.Validation("minPrice must not exceed maxPrice")
	}
	unit := in.Unit
	if unit == "" {
		unit = "INR/kg"
	}
	p := &entities.MarketPrice{
		CropName: strings.TrimSpace(in.CropName),
		District: strings.TrimSpace(in.District),
		Market:   strings.TrimSpace(in.Market),
		Price:    in.Price,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Unit:     unit,
		Quality:  in.Quality,
		Date:     date,
		Source:   in.Source,
	}
	if err := s.prices.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *marketSvc) Import(ctx context.Context, rawURL string) (*service.ImportResult, error) {
	if s.importer == nil {
		return nil, apperr.Unavailable("price import is not configured", nil)
	}
	rows, skipped, err := s.importer.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	source := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		source = u.Hostname()
	}
	now := s.now()
	batch := make([]*entities.MarketPrice, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, &entities.MarketPrice{
			CropName: r.Crop,
			District: r.District,
			Market:   r.Market,
			Price:    r.Modal,
			MinPrice: r.Min,
			MaxPrice: r.Max,
			Unit:     importUnit,
			Date:     now,
			Source:   source,
		})
	}
	if err := s.prices.Create(ctx, batch...); err != nil {
		return nil, err
	}
	logger.L().Info("market prices imported", zap.String("source", source), zap.Int("rows", len(batch)), zap.Int("skipped", skipped))
	return &service.ImportResult{Success: true, Source: source, Imported: len(batch), Skipped: skipped}, nil
}
