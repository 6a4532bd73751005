package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LordDeatHunter/Movienite/models"
	"github.com/LordDeatHunter/Movienite/services"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth resolves the session cookie into a user and stores it on
// the request context. Missing or invalid tokens end the request with
// 401, a token for a vanished user with 404.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(services.SessionCookieName)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		email, err := services.ParseSessionToken(cookie.Value)
		if err != nil {
			slog.Debug("Rejected session token", "path", r.URL.Path, "error", err)
			denyJSON(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		user, err := services.GetUserByEmail(email)
		if err != nil {
			slog.Error("Failed to load session user", "email", email, "error", err)
			denyJSON(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			denyJSON(w, http.StatusNotFound, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying the user the way RequireAuth
// stores it.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user RequireAuth stored, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// OptionalUser resolves the session cookie best-effort. Anonymous and
// broken sessions both come back nil; submissions work either way.
func OptionalUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(services.SessionCookieName)
	if err != nil {
		return nil
	}

	email, err := services.ParseSessionToken(cookie.Value)
	if err != nil {
		return nil
	}

	user, err := services.GetUserByEmail(email)
	if err != nil {
		slog.Debug("Could not attach user to request", "error", err)
		return nil
	}
	return user
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
