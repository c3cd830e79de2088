package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretKeySize = 32

type Maker interface {
	CreateToken(userID, email, role string) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

type JWTMaker struct {
	secretKey []byte
	duration  time.Duration
	now       func() time.Time
}

func NewJWTMaker(secretKey string, duration time.Duration) (*JWTMaker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	return &JWTMaker{secretKey: []byte(secretKey), duration: duration, now: time.Now}, nil
}

func (maker *JWTMaker) CreateToken(userID, email, role string) (string, *Payload, error) {
	payload := NewPayload(userID, email, role, maker.duration, maker.now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(maker.secretKey)
	if err != nil {
		return "", nil, err
	}
	return signed, payload, nil
}

func (maker *JWTMaker) VerifyToken(token string) (*Payload, error) {
	payload := &Payload{}
	_, err := jwt.ParseWithClaims(token, payload, func(t *jwt.Token) (any, error) {
		return maker.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(maker.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if payload.UserID == "" {
		return nil, ErrInvalidToken
	}
	return payload, nil
}
