package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kisan/database"
	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/user/repository"
)

type UserRepo struct{ db *gorm.DB }

func New(db *gorm.DB) *UserRepo { return &UserRepo{db} }

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.PresenceRepository = (*UserRepo)(nil)
)

func (r *UserRepo) Create(ctx context.Context, u *entities.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsDuplicate(err) {
		return apperr.Conflict("user already exists")
	}
	if err != nil {
		return apperr.Internal("create user", err)
	}
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepo) first(q *gorm.DB) (*entities.User, error) {
	var u entities.User
	err := q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Internal("find user", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) (map[string]entities.User, error) {
	out := make(map[string]entities.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []entities.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperr.Internal("find users", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *UserRepo) ListExcept(ctx context.Context, id string) ([]entities.User, error) {
	out := []entities.User{}
	if err := r.db.WithContext(ctx).Where("id <> ?", id).Order("name ASC").Find(&out).Error; err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return out, nil
}

func (r *UserRepo) Save(ctx context.Context, u *entities.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if database.IsDuplicate(err) {
		return apperr.Conflict("email already in use")
	}
	if err != nil {
		return apperr.Internal("save user", err)
	}
	return nil
}

func (r *UserRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&entities.User{})
		if res.Error != nil {
			return apperr.Internal("delete user", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user not found")
		}
		for _, m := range []any{&entities.Farm{}, &entities.Expense{}, &entities.Task{}, &entities.Income{}, &entities.Presence{}} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return apperr.Internal("delete owned records", err)
			}
		}
		return nil
	})
}

func (r *UserRepo) SetPresence(ctx context.Context, uid string, online bool, at time.Time) error {
	p := entities.Presence{UserID: uid, Online: online, LastSeen: at}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"online", "last_seen"}),
	}).Create(&p).Error
	if err != nil {
		return apperr.Internal("set presence", err)
	}
	return nil
}

func (r *UserRepo) Presence(ctx context.Context, ids []string) (map[string]entities.Presence, error) {
	out := make(map[string]entities.Presence, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entities.Presence
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Internal("load presence", err)
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}
