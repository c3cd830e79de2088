package serviceImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/auth/service"
	"kisan/pkg/auth/token"
	"kisan/pkg/logger"
	userRepo "kisan/pkg/user/repository"
	userSvc "kisan/pkg/user/service"
	userSvcImp "kisan/pkg/user/serviceImp"
	"kisan/pkg/validate"
)

const bcryptCost = 10

var errBadCredentials = apperr.Unauthorized("invalid email or password")

// dummyHash keeps a failed lookup as slow as a failed password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("kisan-timing-equalizer"), bcryptCost)

type authSvc struct {
	users    userRepo.UserRepository
	presence userRepo.PresenceRepository
	maker    token.Maker
	now      func() time.Time
}

func NewAuthService(users userRepo.UserRepository, presence userRepo.PresenceRepository, maker token.Maker) service.AuthService {
	return &authSvc{users: users, presence: presence, maker: maker, now: time.Now}
}

func (s *authSvc) Register(ctx context.Context, in service.RegisterInput) (service.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = userSvcImp.NormalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return service.Session{}, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return service.Session{}, apperr.Conflict("user already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return service.Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// max=72 counts runes; bcrypt counts bytes
		return service.Session{}, apperr.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return service.Session{}, apperr.Internal("hash password", err)
	}
	u := &entities.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Location:     in.Location,
		Role:         entities.RoleFarmer,
	}
	// the unique index still guards a concurrent registration
	if err := s.users.Create(ctx, u); err != nil {
		return service.Session{}, err
	}
	logger.L().Info("user registered", zap.String("uid", u.ID))
	return s.session(u, "user registered successfully")
}

func (s *authSvc) Login(ctx context.Context, in service.LoginInput) (service.Session, error) {
	in.Email = userSvcImp.NormalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return service.Session{}, err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
			return service.Session{}, errBadCredentials
		}
		return service.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return service.Session{}, errBadCredentials
	}
	if err := s.presence.SetPresence(ctx, u.ID, true, s.now()); err != nil {
		logger.L().Warn("mark online", zap.String("uid", u.ID), zap.Error(err))
	}
	return s.session(u, "login successful")
}

func (s *authSvc) session(u *entities.User, msg string) (service.Session, error) {
	tok, _, err := s.maker.CreateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return service.Session{}, apperr.Internal("issue token", err)
	}
	return service.Session{Message: msg, Token: tok, User: userSvc.Public(u)}, nil
}
