package middleware

import (
	"authflow/internal/core/domain/logging"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	log := logging.NewFakeLogger()
	handler := RequestLogger(log)(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
	entries := map[string]interface{}{}
	for _, e := range log.Logged[0].Entries {
		entries[e.Key] = e.Value
	}
	require.Equal(t, "/login", entries["path"])
	require.Equal(t, http.StatusTeapot, entries["status"])
}
