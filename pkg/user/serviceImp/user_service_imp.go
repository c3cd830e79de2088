package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/logger"
	repo "kisan/pkg/user/repository"
	"kisan/pkg/user/service"
	"kisan/pkg/validate"
)

type userSvc struct {
	users   repo.UserRepository
	purgers []service.Purger
}

func NewUserService(users repo.UserRepository, purgers ...service.Purger) service.UserService {
	return &userSvc{users: users, purgers: purgers}
}

func (s *userSvc) Profile(ctx context.Context, uid string) (entities.PublicUser, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return entities.PublicUser{}, err
	}
	return service.Public(u), nil
}

func (s *userSvc) UpdateProfile(ctx context.Context, uid string, patch service.ProfilePatch) (entities.PublicUser, error) {
	if err := validate.Struct(patch); err != nil {
		return entities.PublicUser{}, err
	}
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return entities.PublicUser{}, err
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		u.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if email != u.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != u.ID {
				return entities.PublicUser{}, apperr.Conflict("email already in use")
			} else if err != nil && !apperr.Is(err, apperr.KindNotFound) {
				return entities.PublicUser{}, err
			}
			u.Email = email
		}
	}
	if err := s.users.Save(ctx, u); err != nil {
		return entities.PublicUser{}, err
	}
	return service.Public(u), nil
}

func (s *userSvc) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.users.DeleteCascade(ctx, uid); err != nil {
		return err
	}
	for _, p := range s.purgers {
		if err := p.PurgeUser(ctx, uid); err != nil {
			// the account is already gone; leftovers are only logged
			logger.L().Warn("purge user data", zap.String("uid", uid), zap.Error(err))
		}
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
