package resettokengenerator

import (
	"authflow/internal/core/domain/user"
	"crypto/rand"
	"encoding/hex"
)

const tokenBytes = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePasswordResetToken returns 32 random bytes encoded as 64 lowercase hex characters.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b, err := RandomBytes(tokenBytes)
	if err != nil {
		return "", err
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}

func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
