package serviceImp

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/ai"
	"kisan/pkg/apperr"
	"kisan/pkg/climate"
	repo "kisan/pkg/crop/repository"
	"kisan/pkg/crop/service"
	farmRepo "kisan/pkg/farm/repository"
	"kisan/pkg/logger"
	"kisan/pkg/validate"
	"kisan/pkg/weather"
)

type cropSvc struct {
	crops   repo.CropRepository
	farms   farmRepo.FarmRepository
	weather weather.Provider
	advisor ai.Advisor
	weights Weights
	now     func() time.Time
}

func NewCropService(crops repo.CropRepository, farms farmRepo.FarmRepository, wp weather.Provider, advisor ai.Advisor) service.CropService {
	return &cropSvc{crops: crops, farms: farms, weather: wp, advisor: advisor, weights: DefaultWeights, now: time.Now}
}

// resolve fills soil and district from the caller's farm, defaults the
// season from the calendar and checks the required inputs.
func (s *cropSvc) resolve(ctx context.Context, uid string, in service.RecommendInput) (service.RecommendInput, error) {
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	if in.FarmID != "" {
		f, err := s.farms.Get(ctx, uid, in.FarmID)
		if err != nil {
			return in, err
		}
		if in.SoilType == "" {
			in.SoilType = f.SoilType
		}
		if in.District == "" {
			in.District = f.District
		}
	}
	if in.SoilType == "" {
		return in, apperr.Validation("soilType is required")
	}
	if in.WaterAvailability == "" {
		return in, apperr.Validation("waterAvailability is required")
	}
	if in.Season == "" {
		in.Season = climate.SeasonAt(s.now())
	}
	in.District = strings.TrimSpace(in.District)
	return in, nil
}

// lookupWeather never fails: a missing snapshot only skips the adjustment.
func (s *cropSvc) lookupWeather(ctx context.Context, district string) *entities.WeatherSnapshot {
	if district == "" || s.weather == nil {
		return nil
	}
	snap, err := s.weather.Lookup(ctx, district)
	if err != nil {
		logger.L().Info("weather unavailable for recommendation", zap.String("district", district), zap.Error(err))
		return nil
	}
	return snap
}

func (s *cropSvc) Recommend(ctx context.Context, uid string, in service.RecommendInput) (*service.Recommendations, error) {
	in, err := s.resolve(ctx, uid, in)
	if err != nil {
		return nil, err
	}
	crops, err := s.crops.All(ctx)
	if err != nil {
		return nil, err
	}
	snap := s.lookupWeather(ctx, in.District)
	return &service.Recommendations{
		Success:         true,
		Recommendations: Rank(s.weights, crops, in.SoilType, in.WaterAvailability, in.Season, snap),
		Filters: service.Filters{
			SoilType:          in.SoilType,
			WaterAvailability: in.WaterAvailability,
			District:          in.District,
			Season:            in.Season,
		},
		Weather: snap,
	}, nil
}

func (s *cropSvc) Advice(ctx context.Context, uid string, in service.RecommendInput) (*ai.CropAdvice, error) {
	in, err := s.resolve(ctx, uid, in)
	if err != nil {
		return nil, err
	}
	crops, err := s.crops.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(crops))
	for _, c := range crops {
		names = append(names, c.Name)
	}
	return s.advisor.CropAdvice(ctx, ai.CropAdviceRequest{
		SoilType:          in.SoilType,
		WaterAvailability: in.WaterAvailability,
		District:          in.District,
		Season:            in.Season,
		Weather:           s.lookupWeather(ctx, in.District),
		Catalog:           names,
	})
}

func (s *cropSvc) Catalog(ctx context.Context) ([]entities.Crop, error) { return s.crops.All(ctx) }

func (s *cropSvc) Get(ctx context.Context, id string) (*entities.Crop, error) {
	return s.crops.Get(ctx, id)
}

func (s *cropSvc) Search(ctx context.Context, q string) ([]entities.Crop, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperr.Validation("search query is required")
	}
	return s.crops.Search(ctx, q)
}
