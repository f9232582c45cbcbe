package resetpassword

import (
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	resetpassword "authflow/internal/core/services/reset_password"
	"authflow/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MsgInvalidToken = "Invalid or expired reset token"

var MsgPasswordTooLong = fmt.Sprintf("Password must be at most %d bytes long", user.MaxPasswordBytes)

type Handler struct {
	service           services.Service[resetpassword.Input, resetpassword.Result]
	minPasswordLength int
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
	minPasswordLength int,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, minPasswordLength: minPasswordLength}
}

type Input struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

// Validate runs before any store access, a short password is rejected whatever the token is.
func (i Input) Validate(minPasswordLength int) error {
	required := validation.Required.Error("Token and new password are required")
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, required, validation.Length(0, 1024)),
		validation.Field(
			&i.NewPassword,
			required,
			validation.Length(minPasswordLength, 0).Error(
				fmt.Sprintf("Password must be at least %d characters long", minPasswordLength),
			),
			validation.Length(0, user.MaxPasswordBytes).Error(MsgPasswordTooLong),
		),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(h.minPasswordLength); err != nil {
		response.RenderValidationError(rw, err, "token", "newPassword")
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, user.ErrPasswordTooLong) {
		response.RenderMessage(rw, MsgPasswordTooLong, http.StatusBadRequest)
		return
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderMessage(rw, MsgInvalidToken, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderMessage(rw, "Password reset successful", http.StatusOK)
}
