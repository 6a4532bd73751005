package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/LordDeatHunter/Movienite/middleware"
	"github.com/LordDeatHunter/Movienite/services"
)

// Login hands the frontend the Discord authorization URL and plants
// the state nonce for the callback to verify.
func (app *App) Login(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	state := hex.EncodeToString(buf)

	if err := services.SaveOAuthState(w, r, state); err != nil {
		slog.Error("Failed to save oauth state", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": services.DiscordOAuthURL(state)})
}

// Callback finishes the OAuth dance: code for tokens, tokens for the
// Discord identity, identity upserted by email, session cookie set.
func (app *App) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}
	if !services.VerifyOAuthState(w, r, state) {
		writeError(w, http.StatusBadRequest, "Invalid oauth state")
		return
	}

	token, err := services.ExchangeDiscordCode(r.Context(), code)
	if err != nil {
		slog.Error("Discord code exchange failed", "error", err)
		writeError(w, http.StatusBadGateway, "Discord login failed")
		return
	}

	discordUser, err := services.FetchDiscordUser(r.Context(), token)
	if err != nil {
		slog.Error("Discord user fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "Discord login failed")
		return
	}

	user, err := services.UpsertUser(discordUser.Username, discordUser.AvatarURL(), discordUser.Email, discordUser.ID)
	if err != nil {
		slog.Error("User upsert failed", "email", discordUser.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sessionToken, err := services.CreateSessionToken(user.Email, token.AccessToken, token.RefreshToken)
	if err != nil {
		slog.Error("Session token creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   services.SessionLifetimeSeconds(),
		HttpOnly: true,
		Secure:   app.Cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, app.Cfg.FrontendURL, http.StatusSeeOther)
}

// Logout clears the session cookie.
func (app *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the authenticated user.
func (app *App) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
