package passwordhasher

import (
	"authflow/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	return &Bcrypt{cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	if len(password) > user.MaxPasswordBytes {
		return hash, user.ErrPasswordTooLong
	}
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

// ValidatePassword never accepts a password bcrypt would truncate.
func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	if len(password) > user.MaxPasswordBytes {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
