package serviceImp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/service"
	"kisan/pkg/auth/token"
	userRepoImp "kisan/pkg/user/repositoryImp"
)

type fixture struct {
	db    *gorm.DB
	svc   service.AuthService
	maker *token.JWTMaker
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	maker, err := token.NewJWTMaker(strings.Repeat("a", 32), time.Hour)
	require.NoError(t, err)
	repo := userRepoImp.New(db)
	return fixture{db: db, svc: NewAuthService(repo, repo, maker), maker: maker}
}

func register(t *testing.T, f fixture, email string) service.Session {
	t.Helper()
	out, err := f.svc.Register(context.Background(), service.RegisterInput{
		Name: "Asha", Email: email, Password: "secret1", Location: entities.Location{District: "Thrissur"},
	})
	require.NoError(t, err)
	return out
}

func TestRegisterIssuesToken(t *testing.T) {
	f := setup(t)
	out := register(t, f, "Asha@Example.com ")

	assert.Equal(t, "asha@example.com", out.User.Email)
	assert.Equal(t, entities.RoleFarmer, out.User.Role)
	assert.NotEmpty(t, out.User.ID)

	p, err := f.maker.VerifyToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, p.UserID)

	var stored entities.User
	require.NoError(t, f.db.First(&stored, "id = ?", out.User.ID).Error)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	f := setup(t)
	register(t, f, "asha@example.com")

	_, err := f.svc.Register(context.Background(), service.RegisterInput{
		Name: "Other", Email: "ASHA@example.com", Password: "another1",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "user already exists", apperr.Public(err))

	var n int64
	require.NoError(t, f.db.Model(&entities.User{}).Where("email = ?", "asha@example.com").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	f := setup(t)
	cases := []service.RegisterInput{
		{Email: "a@example.com", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@example.com", Password: "123"},
		{Name: "A", Email: "a@example.com", Password: strings.Repeat("p", 80)},
		// 30 runes but 90 bytes
		{Name: "A", Email: "a@example.com", Password: strings.Repeat("ക", 30)},
	}
	for _, in := range cases {
		_, err := f.svc.Register(context.Background(), in)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "%+v", in)
	}
}

func TestLoginDoesNotRevealWhichFieldFailed(t *testing.T) {
	f := setup(t)
	register(t, f, "asha@example.com")
	ctx := context.Background()

	_, unknown := f.svc.Login(ctx, service.LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, wrong := f.svc.Login(ctx, service.LoginInput{Email: "asha@example.com", Password: "wrong-pass"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(unknown))
	assert.Equal(t, apperr.KindOf(unknown), apperr.KindOf(wrong))
	assert.Equal(t, apperr.Public(unknown), apperr.Public(wrong))
}

func TestLoginMarksOnline(t *testing.T) {
	f := setup(t)
	reg := register(t, f, "asha@example.com")

	out, err := f.svc.Login(context.Background(), service.LoginInput{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, out.User.ID)

	var p entities.Presence
	require.NoError(t, f.db.First(&p, "user_id = ?", reg.User.ID).Error)
	assert.True(t, p.OnlineAt(time.Now()))
}
