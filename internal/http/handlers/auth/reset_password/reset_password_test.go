package resetpassword

import (
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	resetpassword "authflow/internal/core/services/reset_password"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetPassword(t *testing.T) {
	cases := []struct {
		id      string
		body    string
		err     error
		status  int
		message string
		called  bool
	}{
		{
			id:      "success",
			body:    `{"token": "abc", "newPassword": "secret2"}`,
			status:  http.StatusOK,
			message: "Password reset successful",
			called:  true,
		},
		{
			id:      "invalid-token",
			body:    `{"token": "abc", "newPassword": "secret2"}`,
			err:     user.ErrInvalidPasswordResetToken,
			status:  http.StatusBadRequest,
			message: MsgInvalidToken,
			called:  true,
		},
		{
			id:      "short-password",
			body:    `{"token": "abc", "newPassword": "12345"}`,
			status:  http.StatusBadRequest,
			message: "Password must be at least 6 characters long",
		},
		{
			id:      "short-password-with-invalid-token",
			body:    `{"token": "abc", "newPassword": "12345"}`,
			err:     user.ErrInvalidPasswordResetToken,
			status:  http.StatusBadRequest,
			message: "Password must be at least 6 characters long",
		},
		{
			id:      "password-over-bcrypt-limit",
			body:    `{"token": "abc", "newPassword": "` + strings.Repeat("a", 73) + `"}`,
			status:  http.StatusBadRequest,
			message: "Password must be at most 72 bytes long",
		},
		{
			id:      "missing-token",
			body:    `{"newPassword": "secret2"}`,
			status:  http.StatusBadRequest,
			message: "Token and new password are required",
		},
		{
			id:      "missing-password",
			body:    `{"token": "abc"}`,
			status:  http.StatusBadRequest,
			message: "Token and new password are required",
		},
		{
			id:      "malformed-json",
			body:    `{"token": 1}`,
			status:  http.StatusBadRequest,
			message: "Invalid request data",
		},
		{
			id:      "internal",
			body:    `{"token": "abc", "newPassword": "secret2"}`,
			err:     errors.New("db is down"),
			status:  http.StatusInternalServerError,
			message: "Server error",
			called:  true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := services.NewFakeService[resetpassword.Input, resetpassword.Result](
				resetpassword.Result{},
				testcase.err,
			)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/reset-password", strings.NewReader(testcase.body))

			New(service, 6).ServeHTTP(rec, req)

			res := map[string]string{}
			require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
			require.Equal(t, testcase.status, rec.Code)
			require.Equal(t, testcase.message, res["message"])
			require.Equal(t, testcase.called, service.CallCount() == 1)
		})
	}
}
