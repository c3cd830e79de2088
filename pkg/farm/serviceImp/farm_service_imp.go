package serviceImp

import (
	"context"
	"strings"

	"kisan/entities"
	"kisan/pkg/apperr"
	repo "kisan/pkg/farm/repository"
	"kisan/pkg/farm/service"
	"kisan/pkg/validate"
)

type farmSvc struct{ r repo.FarmRepository }

func NewFarmService(r repo.FarmRepository) service.FarmService { return &farmSvc{r} }

func (s *farmSvc) List(ctx context.Context, uid string) ([]entities.Farm, error) {
	return s.r.List(ctx, uid)
}

func (s *farmSvc) Get(ctx context.Context, uid, id string) (*entities.Farm, error) {
	return s.r.Get(ctx, uid, id)
}

func (s *farmSvc) Create(ctx context.Context, uid string, in service.FarmInput) (*entities.Farm, error) {
	in.FarmName = strings.TrimSpace(in.FarmName)
	in.Location = strings.TrimSpace(in.Location)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	f := &entities.Farm{
		UserID:   uid,
		FarmName: in.FarmName,
		Location: in.Location,
		CropType: in.CropType,
		SoilType: in.SoilType,
		District: in.District,
		Size:     entities.FarmSize{Value: in.Size.Value, Unit: in.Size.Unit},
		Status:   in.Status,
	}
	if f.Size.Unit == "" {
		f.Size.Unit = entities.UnitAcres
	}
	if f.Status == "" {
		f.Status = entities.FarmActive
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *farmSvc) Update(ctx context.Context, uid, id string, patch service.FarmPatch) (*entities.Farm, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	return s.r.Update(ctx, uid, id, func(f *entities.Farm) error {
		if patch.FarmName != nil {
			f.FarmName = strings.TrimSpace(*patch.FarmName)
		}
		if patch.Location != nil {
			f.Location = strings.TrimSpace(*patch.Location)
		}
		if patch.CropType != nil {
			f.CropType = *patch.CropType
		}
		if patch.SoilType != nil {
			f.SoilType = *patch.SoilType
		}
		if patch.District != nil {
			f.District = *patch.District
		}
		if patch.Size != nil {
			if err := validate.Struct(patch.Size); err != nil {
				return err
			}
			f.Size.Value = patch.Size.Value
			if patch.Size.Unit != "" {
				f.Size.Unit = patch.Size.Unit
			}
		}
		if patch.Status != nil {
			f.Status = *patch.Status
		}
		if f.FarmName == "" || f.Location == "" {
			return apperr.Validation("farmName and location are required")
		}
		return nil
	})
}

func (s *farmSvc) Delete(ctx context.Context, uid, id string) error {
	return s.r.Delete(ctx, uid, id)
}
