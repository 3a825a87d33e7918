package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"recipebox/internal/authtoken"
	applog "recipebox/internal/log"
	"recipebox/models"
)

type contextKey string

const currentUserKey contextKey = "auth:user"

// tokenFromHeader extracts the opaque key from an Authorization header.
// Both "Token <key>" and "Bearer <key>" schemes are accepted.
func tokenFromHeader(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Token ", "Bearer "} {
		if key, found := strings.CutPrefix(header, scheme); found {
			return strings.TrimSpace(key)
		}
	}
	return ""
}

// RequireAuthentication resolves the bearer token to a user before the
// protected resource runs. Requests without a valid token are rejected with
// 401 and never reach the wrapped handler.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if database == nil {
			applog.Debug(r.Context(), "authenticated request without database")
			writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
			return
		}

		key := tokenFromHeader(r)
		if key == "" {
			writeJSONError(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		user, err := authtoken.Resolve(r.Context(), database, key)
		if err != nil {
			if errors.Is(err, authtoken.ErrTokenNotFound) {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			applog.Error(r.Context(), "failed to resolve auth token", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user stored by RequireAuthentication.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(*models.User)
	return user, ok && user != nil
}
