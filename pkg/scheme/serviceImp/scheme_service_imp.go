package serviceImp

import (
	"context"
	"strings"

	"kisan/entities"
	"kisan/pkg/owned"
	repo "kisan/pkg/scheme/repository"
	"kisan/pkg/scheme/service"
	"kisan/pkg/validate"
)

// Eligibility thresholds: land in acres, income in rupees per year.
const (
	SmallHolding   = 5
	LargeHolding   = 10
	MarginalIncome = 100000
)

type schemeSvc struct{ schemes repo.SchemeRepository }

func NewSchemeService(schemes repo.SchemeRepository) service.SchemeService {
	return &schemeSvc{schemes}
}

func list(s []entities.Scheme) service.SchemeList {
	return service.SchemeList{Success: true, Schemes: s, Total: len(s)}
}

func (s *schemeSvc) List(ctx context.Context, category string) (*service.SchemeList, error) {
	out, err := s.schemes.Active(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	l := list(out)
	return &l, nil
}

func (s *schemeSvc) Get(ctx context.Context, id string) (*entities.Scheme, error) {
	return s.schemes.Get(ctx, id)
}

func (s *schemeSvc) Create(ctx context.Context, in service.SchemeInput) (*entities.Scheme, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	sc := &entities.Scheme{
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Department:         in.Department,
		Eligibility:        in.Eligibility,
		Benefits:           in.Benefits,
		DocumentsRequired:  in.DocumentsRequired,
		ApplicationProcess: in.ApplicationProcess,
		Contact:            in.Contact,
		Category:           in.Category,
		State:              in.State,
		Active:             in.Active == nil || *in.Active,
	}
	if sc.State == "" {
		sc.State = "Kerala"
	}
	if in.Deadline != "" {
		d, err := owned.ParseDate("deadline", in.Deadline)
		if err != nil {
			return nil, err
		}
		sc.Deadline = &d
	}
	if err := s.schemes.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Matches reports whether the scheme's eligibility text fits the farmer:
// a small holding, a large holding or a marginal income each count.
func Matches(sc entities.Scheme, in service.EligibilityInput) bool {
	text := strings.ToLower(strings.Join(sc.Eligibility, " "))
	if in.LandSize != nil && *in.LandSize < SmallHolding && strings.Contains(text, "small") {
		return true
	}
	if in.LandSize != nil && *in.LandSize > LargeHolding && strings.Contains(text, "large") {
		return true
	}
	return in.AnnualIncome != nil && *in.AnnualIncome < MarginalIncome && strings.Contains(text, "marginal")
}

func (s *schemeSvc) Eligible(ctx context.Context, in service.EligibilityInput) (*service.Eligible, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	all, err := s.schemes.Active(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	hits := []entities.Scheme{}
	for _, sc := range all {
		if Matches(sc, in) {
			hits = append(hits, sc)
		}
	}
	return &service.Eligible{SchemeList: list(hits), Filters: in}, nil
}
