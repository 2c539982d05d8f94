// AngelaMos | 2026
// http.go

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/middleware"
)

// As authenticates every request as the given caller, standing in for
// the bearer token middleware in handler tests.
func As(userID, role string, demo bool) func(http.Handler) http.Handler {
	claims := &middleware.AccessTokenClaims{
		UserID: userID,
		Role:   role,
		IsDemo: demo,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}
}

// Do sends a JSON request to h. A non-empty token is sent as a bearer
// token; a nil body sends no payload.
func Do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded response body into v.
func Decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ErrorMessage returns the message field of an error response.
func ErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return Decode[core.ErrorBody](t, rec).Message
}
