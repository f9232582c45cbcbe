package user

import (
	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Role string

const RoleUser Role = "user"

type User struct {
	ID                ID
	Name              string
	Email             c.Email
	PasswordHash      PasswordHash
	IsActive          bool
	Role              Role
	CreatedAt         time.Time
	ResetToken        c.Optional[PasswordResetToken]
	ResetTokenExpires c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError("email is not set for user %d", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError("password hash is not set for user %d", u.ID)
	}
	if u.ResetToken.IsPresent != u.ResetTokenExpires.IsPresent {
		return e.NewInvalidStateError("reset token and its expiry must be set together for user %d", u.ID)
	}
	return nil
}

// HasPendingPasswordReset reports whether the user holds a reset token that can still be redeemed at.
func (u *User) HasPendingPasswordReset(at time.Time) bool {
	return u.ResetToken.IsPresent && at.Before(u.ResetTokenExpires.Value)
}
