package user

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrTokenNotFound = errors.New("verification token not found")
)

type Repository interface {
	Create(ctx context.Context, u *User) (string, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// VerifyByToken marks the matching user verified and clears the token.
	VerifyByToken(ctx context.Context, token string) (*User, error)
}
