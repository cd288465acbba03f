package common

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// WithUserID stores the authenticated user id on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// TokenFromRequest reads the marketplace "auth-token" header, falling back
// to a bearer Authorization header and then the "token" query parameter.
func TokenFromRequest(r *http.Request) string {
	if tok := strings.TrimSpace(r.Header.Get("auth-token")); tok != "" {
		return tok
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// AuthMiddleware rejects requests without a valid token and injects the
// token's user id into the request context.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := TokenFromRequest(r)
			if tok == "" {
				WriteError(w, &AppError{Kind: KindUnauthorized, Message: "Access denied!"})
				return
			}
			claims, err := ValidToken(secret, tok)
			if err != nil {
				WriteError(w, &AppError{Kind: KindUnauthorized, Message: "Invalid Token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

type errorBody struct {
	Error   bool      `json:"error"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, HTTPStatus(err), errorBody{
		Error:   true,
		Kind:    KindOf(err),
		Message: MessageOf(err),
	})
}
