package owned

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
)

func newFarmStore(t *testing.T) *Store[entities.Farm, *entities.Farm] {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "owned.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return New[entities.Farm](db, "farm")
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newFarmStore(t)

	farm := &entities.Farm{UserID: "alice", FarmName: "North plot", Location: "Thrissur"}
	require.NoError(t, s.Create(ctx, farm))
	require.NotEmpty(t, farm.ID)

	_, err := s.Get(ctx, "bob", farm.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = s.Update(ctx, "bob", farm.ID, func(f *entities.Farm) error {
		f.FarmName = "stolen"
		return nil
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = s.Delete(ctx, "bob", farm.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	got, err := s.Get(ctx, "alice", farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "North plot", got.FarmName)

	bobs, err := s.List(ctx, "bob", "")
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestUpdateAndDeleteByOwner(t *testing.T) {
	ctx := context.Background()
	s := newFarmStore(t)

	farm := &entities.Farm{UserID: "alice", FarmName: "North plot", Location: "Thrissur"}
	require.NoError(t, s.Create(ctx, farm))

	updated, err := s.Update(ctx, "alice", farm.ID, func(f *entities.Farm) error {
		f.Status = entities.FarmHarvested
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, entities.FarmHarvested, updated.Status)
	assert.Equal(t, "North plot", updated.FarmName)

	n, err := s.Count(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.Delete(ctx, "alice", farm.ID))
	_, err = s.Get(ctx, "alice", farm.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(s.Delete(ctx, "alice", farm.ID), apperr.KindNotFound))
}

func TestUpdateCannotReassignOwner(t *testing.T) {
	ctx := context.Background()
	s := newFarmStore(t)

	farm := &entities.Farm{UserID: "alice", FarmName: "North plot", Location: "Thrissur"}
	require.NoError(t, s.Create(ctx, farm))

	_, err := s.Update(ctx, "alice", farm.ID, func(f *entities.Farm) error {
		f.UserID = "bob"
		return nil
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.Get(ctx, "alice", farm.ID)
	require.NoError(t, err)
}

func TestCreateRequiresOwner(t *testing.T) {
	s := newFarmStore(t)
	err := s.Create(context.Background(), &entities.Farm{FarmName: "orphan"})
	assert.Error(t, err)
}
