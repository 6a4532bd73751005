package services

import (
	"errors"
	"testing"
	"time"

	"github.com/LordDeatHunter/Movienite/config"

	"github.com/golang-jwt/jwt/v5"
)

func initTestAuth(t *testing.T) {
	t.Helper()
	InitAuth(&config.Config{
		JWTSecret:     "test-jwt-secret",
		SessionSecret: "test-session-secret",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	initTestAuth(t)

	token, err := CreateSessionToken("movie@night.example", "access", "refresh")
	if err != nil {
		t.Fatalf("CreateSessionToken error: %v", err)
	}

	email, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if email != "movie@night.example" {
		t.Errorf("email = %q, want movie@night.example", email)
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	initTestAuth(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseSessionToken(token); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("ParseSessionToken(%q) error = %v, want ErrInvalidSession", token, err)
		}
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	initTestAuth(t)
	token, err := CreateSessionToken("movie@night.example", "", "")
	if err != nil {
		t.Fatalf("CreateSessionToken error: %v", err)
	}

	InitAuth(&config.Config{JWTSecret: "a-different-secret", SessionSecret: "x"})
	if _, err := ParseSessionToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseSessionToken error = %v, want ErrInvalidSession", err)
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	initTestAuth(t)

	claims := SessionClaims{
		Email: "movie@night.example",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "discord_session",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret"))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := ParseSessionToken(expired); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseSessionToken error = %v, want ErrInvalidSession", err)
	}
}

func TestParseSessionTokenRequiresEmail(t *testing.T) {
	initTestAuth(t)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "discord_session",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, err := ParseSessionToken(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseSessionToken error = %v, want ErrInvalidSession", err)
	}
}
