package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LordDeatHunter/Movienite/config"
	"github.com/LordDeatHunter/Movienite/models"
	"github.com/LordDeatHunter/Movienite/services"
)

func TestRequireAuthWithoutCookie(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/movies/tt0133093/discard", nil)
	RequireAuth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler ran for an unauthenticated request")
	}
	if !strings.Contains(rr.Body.String(), "Not authenticated") {
		t.Errorf("body = %q, want Not authenticated error", rr.Body.String())
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	services.InitAuth(&config.Config{
		JWTSecret:     "test-jwt-secret",
		SessionSecret: "test-session-secret",
	})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: "not-a-jwt"})
	RequireAuth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler ran with an invalid session token")
	}
	if !strings.Contains(rr.Body.String(), "Invalid session") {
		t.Errorf("body = %q, want Invalid session error", rr.Body.String())
	}
}

func TestUserFromContext(t *testing.T) {
	user := &models.User{ID: 7, Username: "deckard"}

	got, ok := UserFromContext(WithUser(context.Background(), user))
	if !ok || got.ID != 7 {
		t.Errorf("UserFromContext = %+v, %v, want the stored user", got, ok)
	}

	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("UserFromContext found a user in an empty context")
	}
}
