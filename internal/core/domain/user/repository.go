package user

import (
	c "authflow/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	IsActive     bool
	Role         Role
	CreatedAt    time.Time
}

type SetPasswordResetTokenInput struct {
	Email     c.Email
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type ResetPasswordInput struct {
	Token        PasswordResetToken
	PasswordHash PasswordHash
	At           time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// SetPasswordResetToken replaces any pending token of the user with the given email.
	SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) (User, error)
	// ResetPassword sets the new hash and clears the token in one step,
	// only if the token is still pending at input.At.
	ResetPassword(ctx context.Context, input ResetPasswordInput) (User, error)
}
