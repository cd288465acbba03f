package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidToken(t *testing.T) {
	tok, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = ValidToken([]byte("other"), tok)
	assert.Error(t, err)

	expired, err := GenerateToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)
	_, err = ValidToken(testSecret, expired)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	tok, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := AuthMiddleware(testSecret)(next)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		userID string
	}{
		{"auth-token header", func(r *http.Request) { r.Header.Set("auth-token", tok) }, http.StatusOK, "user-1"},
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }, http.StatusOK, "user-1"},
		{"missing token", func(r *http.Request) {}, http.StatusUnauthorized, ""},
		{"garbage token", func(r *http.Request) { r.Header.Set("auth-token", "nope") }, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.userID, seen)
			if tt.status != http.StatusOK {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, true, body["error"])
				assert.Equal(t, string(KindUnauthorized), body["kind"])
			}
		})
	}
}

func TestTokenFromRequest_QueryFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws?userId=u1&token=abc", nil)
	assert.Equal(t, "abc", TokenFromRequest(req))
}

func TestRequireField(t *testing.T) {
	v, err := RequireField("userId", "  u1 ")
	assert.NoError(t, err)
	assert.Equal(t, "u1", v)

	_, err = RequireField("userId", "   ")
	assert.ErrorIs(t, err, NewValidationError("userId is required"))
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent("hello", 10))
	assert.ErrorIs(t, ValidateContent(" ", 10), ErrValidation)
	assert.ErrorIs(t, ValidateContent("this is far too long", 10), NewValidationError("content is too long"))
}
