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
	"kisan/pkg/scheme/repositoryImp"
	"kisan/pkg/scheme/service"
)

func newSvc(t *testing.T) service.SchemeService {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "scheme.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	_, err = database.Seed(db, time.Now())
	require.NoError(t, err)
	return NewSchemeService(repositoryImp.New(db))
}

func f(v float64) *float64 { return &v }

func TestMatches(t *testing.T) {
	pm := entities.Scheme{Eligibility: []string{"Small and marginal farmers"}}
	big := entities.Scheme{Eligibility: []string{"Large estates above 10 acres"}}
	cases := []struct {
		name string
		sc   entities.Scheme
		in   service.EligibilityInput
		want bool
	}{
		{"small holding", pm, service.EligibilityInput{LandSize: f(2)}, true},
		{"marginal income", pm, service.EligibilityInput{LandSize: f(7), AnnualIncome: f(80000)}, true},
		{"neither", pm, service.EligibilityInput{LandSize: f(7), AnnualIncome: f(300000)}, false},
		{"nothing given", pm, service.EligibilityInput{}, false},
		{"boundary is not small", pm, service.EligibilityInput{LandSize: f(5)}, false},
		{"large holding", big, service.EligibilityInput{LandSize: f(12)}, true},
		{"boundary is not large", big, service.EligibilityInput{LandSize: f(10)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(tc.sc, tc.in))
		})
	}
}

func TestListAndGet(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, all.Total)
	assert.NotNil(t, all.Schemes[0].Deadline, "dated schemes come first")

	ins, err := svc.List(ctx, "insurance")
	require.NoError(t, err)
	require.Len(t, ins.Schemes, 1)

	got, err := svc.Get(ctx, ins.Schemes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Kerala State Crop Insurance Scheme", got.Title)

	_, err = svc.Get(ctx, "nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateAndInactiveHidden(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()
	off := false

	_, err := svc.Create(ctx, service.SchemeInput{Title: "Old tractor loan", Description: "closed", Category: "loan", Active: &off})
	require.NoError(t, err)
	sc, err := svc.Create(ctx, service.SchemeInput{Title: "Drip subsidy", Description: "micro irrigation", Category: "subsidy", Deadline: "2026-09-30"})
	require.NoError(t, err)
	assert.True(t, sc.Active)
	assert.Equal(t, "Kerala", sc.State)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "Drip subsidy", all.Schemes[0].Title)

	loans, err := svc.List(ctx, "loan")
	require.NoError(t, err)
	assert.Zero(t, loans.Total)

	_, err = svc.Create(ctx, service.SchemeInput{Title: "x", Description: "y", Category: "lottery"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestEligible(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	out, err := svc.Eligible(ctx, service.EligibilityInput{LandSize: f(1.5)})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Pradhan Mantri Kisan Samman Nidhi", out.Schemes[0].Title)

	out, err = svc.Eligible(ctx, service.EligibilityInput{LandSize: f(8), AnnualIncome: f(400000)})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.NotNil(t, out.Schemes)

	_, err = svc.Eligible(ctx, service.EligibilityInput{LandSize: f(-1)})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
