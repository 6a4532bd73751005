package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/LordDeatHunter/Movienite/config"

	"golang.org/x/oauth2"
)

const discordAPIBase = "https://discord.com/api"

var discordOAuth *oauth2.Config

// DiscordUser is the subset of /users/@me we care about.
type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// AvatarURL builds the CDN URL for the user's avatar hash, empty when
// the user has none.
func (u *DiscordUser) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
}

// InitDiscordOAuth configures the Discord authorization-code flow.
func InitDiscordOAuth(cfg *config.Config) {
	discordOAuth = &oauth2.Config{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURL:  cfg.DiscordRedirectURL,
		Scopes:       []string{"identify", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/oauth2/authorize",
			TokenURL: discordAPIBase + "/oauth2/token",
		},
	}
}

// DiscordOAuthURL returns the authorization URL for the given state.
func DiscordOAuthURL(state string) string {
	return discordOAuth.AuthCodeURL(state)
}

// ExchangeDiscordCode trades the callback code for Discord tokens.
func ExchangeDiscordCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := discordOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange discord code: %w", err)
	}
	return token, nil
}

// FetchDiscordUser loads the authenticated user's identity.
func FetchDiscordUser(ctx context.Context, token *oauth2.Token) (*DiscordUser, error) {
	client := discordOAuth.Client(ctx, token)

	resp, err := client.Get(discordAPIBase + "/users/@me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discord user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord returned status %d for /users/@me", resp.StatusCode)
	}

	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode discord user: %w", err)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("discord user has no email")
	}

	return &user, nil
}
