package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickx/internal/adapters/auth"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		subject, ok := SubjectFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "scheduler", subject)
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth(t *testing.T) {
	token, err := auth.IssueToken(testSecret, "scheduler", time.Hour)
	require.NoError(t, err)

	var called bool
	handler := RequireAuth(auth.NewJWTVerifier(testSecret))(protectedHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAuth_Rejections(t *testing.T) {
	wrongSecret, err := auth.IssueToken("other-secret", "scheduler", time.Hour)
	require.NoError(t, err)
	expired, err := auth.IssueToken(testSecret, "scheduler", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + wrongSecret},
		{"expired", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireAuth(auth.NewJWTVerifier(testSecret))(protectedHandler(t, &called))

			req := httptest.NewRequest(http.MethodPost, "/sync", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}
