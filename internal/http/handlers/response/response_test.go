package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	body := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRenderMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderMessage(rec, "Login successful", http.StatusOK)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, map[string]interface{}{"message": "Login successful"}, decode(t, rec))
}

func TestRenderValidationErrorPicksFirstField(t *testing.T) {
	rec := httptest.NewRecorder()
	err := validation.Errors{
		"a": errors.New("a is wrong"),
		"b": errors.New("b is wrong"),
	}
	RenderValidationError(rec, err, "b", "a")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, map[string]interface{}{"message": "b is wrong"}, decode(t, rec))
}

func TestRenderValidationErrorFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderValidationError(rec, errors.New("internal"), "a")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, MsgInvalidRequestData, decode(t, rec)["message"])
}
