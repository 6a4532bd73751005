package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LordDeatHunter/Movienite/config"
	"github.com/LordDeatHunter/Movienite/events"
	"github.com/LordDeatHunter/Movienite/middleware"
	"github.com/LordDeatHunter/Movienite/models"
)

func newTestApp() *App {
	return New(&config.Config{}, events.NewHub(), nil)
}

// Mutation routes must reject anonymous requests before touching the
// movie, so a missing session wins over a missing movie.
func TestMutationsRequireAuthentication(t *testing.T) {
	router := newTestApp().Routes()

	for _, path := range []string{
		"/api/movies/tt0133093/set_status",
		"/api/movies/tt0133093/toggle_watch",
		"/api/movies/tt0133093/discard",
		"/api/movies/tt0133093/toggle_boobies",
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, nil)
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("POST %s status = %d, want %d", path, rr.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(rr.Body.String(), "Not authenticated") {
			t.Errorf("POST %s body = %q, want Not authenticated error", path, rr.Body.String())
		}
	}
}

// The admin gate on SetStatus comes before the movie lookup, so a
// non-admin is refused whether or not the movie exists.
func TestSetStatusRequiresAdmin(t *testing.T) {
	app := newTestApp()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/movies/tt0133093/set_status", strings.NewReader(`{"status":"watched"}`))
	req = req.WithContext(middleware.WithUser(req.Context(), &models.User{ID: 7, Username: "deckard"}))
	app.SetStatus(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if !strings.Contains(rr.Body.String(), "Only admins can set movie status") {
		t.Errorf("body = %q, want admin-only error", rr.Body.String())
	}
}

func TestPing(t *testing.T) {
	router := newTestApp().Routes()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Body.String() != "pong" {
		t.Errorf("body = %q, want pong", rr.Body.String())
	}
}
