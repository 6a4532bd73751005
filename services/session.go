package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LordDeatHunter/Movienite/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
)

const (
	SessionCookieName = "session_token"
	sessionLifetime   = 7 * 24 * time.Hour
	oauthSessionName  = "movienite-oauth"
)

var (
	ErrInvalidSession = errors.New("invalid session token")

	jwtSecret  []byte
	stateStore *sessions.CookieStore
)

// SessionClaims is the JWT carried in the session cookie. The Discord
// tokens ride along so a future refresh flow can use them.
type SessionClaims struct {
	Email               string `json:"email"`
	DiscordAccessToken  string `json:"discord_access_token,omitempty"`
	DiscordRefreshToken string `json:"discord_refresh_token,omitempty"`
	jwt.RegisteredClaims
}

// InitAuth wires the JWT secret and the short-lived cookie store used
// for the OAuth state round trip.
func InitAuth(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWTSecret)

	stateStore = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	stateStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600, // only needs to survive the login redirect
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateSessionToken issues the signed session JWT set after a
// successful OAuth callback.
func CreateSessionToken(email, discordAccessToken, discordRefreshToken string) (string, error) {
	claims := SessionClaims{
		Email:               email,
		DiscordAccessToken:  discordAccessToken,
		DiscordRefreshToken: discordRefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "discord_session",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the session JWT and returns the email it
// identifies. Expired, malformed or mis-signed tokens all come back as
// ErrInvalidSession.
func ParseSessionToken(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	if claims.Email == "" {
		return "", ErrInvalidSession
	}
	return claims.Email, nil
}

// SessionLifetimeSeconds is the max-age for the session cookie.
func SessionLifetimeSeconds() int {
	return int(sessionLifetime.Seconds())
}

// SaveOAuthState stashes the OAuth state nonce in a cookie so the
// callback can check the round trip.
func SaveOAuthState(w http.ResponseWriter, r *http.Request, state string) error {
	session, _ := stateStore.Get(r, oauthSessionName)
	session.Values["state"] = state
	return session.Save(r, w)
}

// VerifyOAuthState checks the callback's state parameter against the
// stashed nonce and clears it.
func VerifyOAuthState(w http.ResponseWriter, r *http.Request, state string) bool {
	session, err := stateStore.Get(r, oauthSessionName)
	if err != nil {
		return false
	}

	saved, ok := session.Values["state"].(string)
	session.Options.MaxAge = -1
	_ = session.Save(r, w)

	return ok && state != "" && saved == state
}
