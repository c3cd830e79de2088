package service

import (
	"context"

	"kisan/entities"
)

type RegisterInput struct {
	Name     string            `json:"name" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required,min=6,max=72"`
	Phone    string            `json:"phone"`
	Location entities.Location `json:"location"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    entities.PublicUser `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (Session, error)
	Login(ctx context.Context, in LoginInput) (Session, error)
}
