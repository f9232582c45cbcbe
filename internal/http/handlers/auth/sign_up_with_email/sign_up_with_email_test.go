package signupwithemail

import (
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	signupwithemail "authflow/internal/core/services/sign_up_with_email"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeService = services.FakeService[signupwithemail.Input, signupwithemail.Result]

func serve(t *testing.T, service *fakeService, body string) (*httptest.ResponseRecorder, string) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	New(service, 6).ServeHTTP(rec, req)

	res := map[string]string{}
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res["message"]
}

func TestSignUp(t *testing.T) {
	service := services.NewFakeService[signupwithemail.Input, signupwithemail.Result](signupwithemail.Result{}, nil)

	rec, msg := serve(t, service, `{"name": "Alice", "email": "  Alice@Example.COM ", "password": "secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "User registered successfully", msg)
	require.Equal(t, 1, service.CallCount())
	require.Equal(t, "alice@example.com", string(service.Inputs[0].Email))
	require.Equal(t, "Alice", service.Inputs[0].Name)
	require.Equal(t, user.RawPassword("secret1"), service.Inputs[0].Password)
	require.NotContains(t, rec.Body.String(), "secret1")
}

func TestSignUpErrors(t *testing.T) {
	cases := []struct {
		id      string
		body    string
		err     error
		status  int
		message string
		called  bool
	}{
		{
			id:      "malformed-json",
			body:    `{"name": `,
			status:  http.StatusBadRequest,
			message: "Invalid request data",
		},
		{
			id:      "missing-name",
			body:    `{"email": "a@test.test", "password": "secret1"}`,
			status:  http.StatusBadRequest,
			message: "Name, email and password are required",
		},
		{
			id:      "invalid-email",
			body:    `{"name": "A", "email": "not-an-email", "password": "secret1"}`,
			status:  http.StatusBadRequest,
			message: "Email is invalid",
		},
		{
			id:      "short-password",
			body:    `{"name": "A", "email": "a@test.test", "password": "12345"}`,
			status:  http.StatusBadRequest,
			message: "Password must be at least 6 characters long",
		},
		{
			id:      "password-over-bcrypt-limit",
			body:    `{"name": "A", "email": "a@test.test", "password": "` + strings.Repeat("a", 72) + `ORIGINAL"}`,
			status:  http.StatusBadRequest,
			message: "Password must be at most 72 bytes long",
		},
		{
			id:      "multibyte-password-over-bcrypt-limit",
			body:    `{"name": "A", "email": "a@test.test", "password": "` + strings.Repeat("é", 37) + `"}`,
			status:  http.StatusBadRequest,
			message: "Password must be at most 72 bytes long",
		},
		{
			id:      "password-too-long-for-hasher",
			body:    `{"name": "A", "email": "a@test.test", "password": "secret1"}`,
			err:     user.ErrPasswordTooLong,
			status:  http.StatusBadRequest,
			message: "Password must be at most 72 bytes long",
			called:  true,
		},
		{
			id:      "email-exists",
			body:    `{"name": "A", "email": "a@test.test", "password": "secret1"}`,
			err:     user.ErrEmailAlreadyExists,
			status:  http.StatusBadRequest,
			message: "Email already exists",
			called:  true,
		},
		{
			id:      "internal",
			body:    `{"name": "A", "email": "a@test.test", "password": "secret1"}`,
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "Server error",
			called:  true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := services.NewFakeService[signupwithemail.Input, signupwithemail.Result](
				signupwithemail.Result{},
				testcase.err,
			)

			rec, msg := serve(t, service, testcase.body)

			require.Equal(t, testcase.status, rec.Code)
			require.Equal(t, testcase.message, msg)
			require.Equal(t, testcase.called, service.CallCount() == 1)
		})
	}
}
