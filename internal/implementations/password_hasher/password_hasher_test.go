package passwordhasher

import (
	"authflow/internal/core/domain/user"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, cost: 5, password: "secret1"},
		{ix: 2, cost: 5, password: ""},
		{ix: 3, cost: 7, password: "password password"},
		{ix: 4, cost: 10, password: "   test   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			require.Nil(t, err)
			require.NotEqual(t, user.PasswordHash(""), hash)
			require.NotEqual(t, c.password, string(hash))
			require.True(t, h.ValidatePassword(user.RawPassword(c.password), hash))
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{ix: 1, cost: 5, passwordToHash: "secret1", passwordToCheck: "secret1 "},
		{ix: 2, cost: 5, passwordToHash: "", passwordToCheck: " "},
		{ix: 3, cost: 10, passwordToHash: "password password", passwordToCheck: " password password"},
		{ix: 4, cost: 8, passwordToHash: "   test   ", passwordToCheck: "   tost   "},
		{ix: 5, cost: 5, passwordToHash: "Secret1", passwordToCheck: "secret1"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			require.Nil(t, err)
			require.NotEqual(t, user.PasswordHash(""), hash)
			require.False(t, h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash))
		})
	}
}

func TestSamePasswordHashesDiffer(t *testing.T) {
	h := NewBcrypt(5)
	first, err := h.HashPassword("secret1")
	require.Nil(t, err)
	second, err := h.HashPassword("secret1")
	require.Nil(t, err)
	require.NotEqual(t, first, second)
}

func TestInvalidHash(t *testing.T) {
	require.False(t, NewBcrypt(5).ValidatePassword("secret1", user.PasswordHash("not-a-bcrypt-hash")))
}

func TestPasswordOverBcryptLimit(t *testing.T) {
	h := NewBcrypt(5)
	prefix := strings.Repeat("a", user.MaxPasswordBytes)

	_, err := h.HashPassword(user.RawPassword(prefix + "ORIGINAL"))
	require.ErrorIs(t, err, user.ErrPasswordTooLong)

	_, err = h.HashPassword(user.RawPassword(strings.Repeat("é", 37)))
	require.ErrorIs(t, err, user.ErrPasswordTooLong)

	hash, err := h.HashPassword(user.RawPassword(prefix))
	require.Nil(t, err)
	require.True(t, h.ValidatePassword(user.RawPassword(prefix), hash))
	require.False(t, h.ValidatePassword(user.RawPassword(prefix+"different"), hash))
}
