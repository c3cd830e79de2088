package repository

import (
	"context"
	"time"

	"kisan/entities"
)

type UserRepository interface {
	// Create fails with a Conflict error when the email is taken.
	Create(ctx context.Context, u *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]entities.User, error)
	// ListExcept returns every other user ordered by name.
	ListExcept(ctx context.Context, id string) ([]entities.User, error)
	Save(ctx context.Context, u *entities.User) error
	// DeleteCascade removes the user and every record they own in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type PresenceRepository interface {
	SetPresence(ctx context.Context, uid string, online bool, at time.Time) error
	Presence(ctx context.Context, ids []string) (map[string]entities.Presence, error)
}
