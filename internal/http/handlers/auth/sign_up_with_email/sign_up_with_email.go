package signupwithemail

import (
	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	signupwithemail "authflow/internal/core/services/sign_up_with_email"
	"authflow/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var MsgPasswordTooLong = fmt.Sprintf("Password must be at most %d bytes long", user.MaxPasswordBytes)

type Handler struct {
	service           services.Service[signupwithemail.Input, signupwithemail.Result]
	minPasswordLength int
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
	minPasswordLength int,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, minPasswordLength: minPasswordLength}
}

type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	return nil
}

func (i Input) Validate(minPasswordLength int) error {
	required := validation.Required.Error("Name, email and password are required")
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, required, validation.Length(0, 256)),
		validation.Field(&i.Email, required, is.Email.Error("Email is invalid"), validation.Length(0, 512)),
		validation.Field(
			&i.Password,
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
		response.RenderValidationError(rw, err, "name", "email", "password")
		return
	}

	_, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Name:     input.Name,
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrPasswordTooLong) {
		response.RenderMessage(rw, MsgPasswordTooLong, http.StatusBadRequest)
		return
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderMessage(rw, "Email already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderMessage(rw, "User registered successfully", http.StatusCreated)
}
