package service

import (
	"context"

	"github.com/jinzhu/copier"

	"kisan/entities"
)

type ProfilePatch struct {
	Name     *string            `json:"name" validate:"omitempty,min=1"`
	Email    *string            `json:"email" validate:"omitempty,email"`
	Phone    *string            `json:"phone"`
	Location *entities.Location `json:"location"`
}

type UserService interface {
	Profile(ctx context.Context, uid string) (entities.PublicUser, error)
	UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) (entities.PublicUser, error)
	DeleteAccount(ctx context.Context, uid string) error
}

// Purger removes data a user owns outside the SQLite store.
type Purger interface {
	PurgeUser(ctx context.Context, uid string) error
}

// Public projects u for clients; the password hash never leaves.
func Public(u *entities.User) entities.PublicUser {
	var p entities.PublicUser
	_ = copier.Copy(&p, u)
	p.ID = u.ID
	return p
}
