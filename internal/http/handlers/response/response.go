package response

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgInvalidRequestData = "Invalid request data"
	MsgServerError        = "Server error"
)

type messageResponse struct {
	Message string `json:"message"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderMessage(rw, MsgServerError, http.StatusInternalServerError)
}

func RenderInvalidRequestData(rw http.ResponseWriter) {
	RenderMessage(rw, MsgInvalidRequestData, http.StatusBadRequest)
}

// RenderValidationError answers 400 with the message of the first failing
// field, checked in the order given.
func RenderValidationError(rw http.ResponseWriter, err error, fields ...string) {
	msg := MsgInvalidRequestData
	if errs, ok := err.(validation.Errors); ok {
		for _, field := range fields {
			if fieldErr, ok := errs[field]; ok && fieldErr != nil {
				msg = fieldErr.Error()
				break
			}
		}
	}
	RenderMessage(rw, msg, http.StatusBadRequest)
}

func RenderMessage(rw http.ResponseWriter, msg string, status int) {
	Render(rw, messageResponse{Message: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
