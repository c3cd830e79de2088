package serviceImp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/user/repositoryImp"
	"kisan/pkg/user/service"
)

type purgeRecorder struct {
	uids []string
	err  error
}

func (p *purgeRecorder) PurgeUser(_ context.Context, uid string) error {
	p.uids = append(p.uids, uid)
	return p.err
}

func setup(t *testing.T, purgers ...service.Purger) (*gorm.DB, service.UserService) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "user.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db, NewUserService(repositoryImp.New(db), purgers...)
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *entities.User {
	t.Helper()
	u := &entities.User{Name: name, Email: email, PasswordHash: "x", Role: entities.RoleFarmer}
	require.NoError(t, db.Create(u).Error)
	return u
}

func strp(s string) *string { return &s }

func TestUpdateProfileMergesFields(t *testing.T) {
	db, svc := setup(t)
	u := seedUser(t, db, "Asha", "asha@example.com")

	out, err := svc.UpdateProfile(context.Background(), u.ID, service.ProfilePatch{
		Phone:    strp("98470 00000"),
		Location: &entities.Location{District: "Idukki", Village: "Kumily"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", out.Name)
	assert.Equal(t, "98470 00000", out.Phone)
	assert.Equal(t, "Idukki", out.Location.District)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db, svc := setup(t)
	u := seedUser(t, db, "Asha", "asha@example.com")
	seedUser(t, db, "Biju", "biju@example.com")

	_, err := svc.UpdateProfile(context.Background(), u.ID, service.ProfilePatch{Email: strp("BIJU@example.com")})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeleteAccountCascades(t *testing.T) {
	rec := &purgeRecorder{err: errors.New("mongo down")}
	db, svc := setup(t, rec)
	u := seedUser(t, db, "Asha", "asha@example.com")
	other := seedUser(t, db, "Biju", "biju@example.com")

	require.NoError(t, db.Create(&entities.Farm{UserID: u.ID, FarmName: "A", Location: "X"}).Error)
	require.NoError(t, db.Create(&entities.Farm{UserID: other.ID, FarmName: "B", Location: "Y"}).Error)
	require.NoError(t, db.Create(&entities.Task{UserID: u.ID, Title: "Weed"}).Error)
	require.NoError(t, db.Create(&entities.Income{UserID: u.ID, CropSales: 10}).Error)

	require.NoError(t, svc.DeleteAccount(context.Background(), u.ID))
	assert.Equal(t, []string{u.ID}, rec.uids)

	var farms, tasks, incomes int64
	db.Model(&entities.Farm{}).Count(&farms)
	db.Model(&entities.Task{}).Count(&tasks)
	db.Model(&entities.Income{}).Count(&incomes)
	assert.EqualValues(t, 1, farms)
	assert.Zero(t, tasks)
	assert.Zero(t, incomes)

	_, err := svc.Profile(context.Background(), u.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.DeleteAccount(context.Background(), u.ID)))
}
