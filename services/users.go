package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LordDeatHunter/Movienite/database"
	"github.com/LordDeatHunter/Movienite/models"
)

// UpsertUser creates or refreshes a user keyed by email. Each OAuth
// callback runs through here, so username, avatar and discord id track
// whatever Discord currently reports.
func UpsertUser(username, avatarURL, email, discordID string) (*models.User, error) {
	var user models.User
	var avatar, discord sql.NullString
	err := database.DB.QueryRow(`
		INSERT INTO users (username, avatar_url, email, discord_id, created_at, is_admin)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (email) DO UPDATE SET discord_id = EXCLUDED.discord_id,
		                                  username   = EXCLUDED.username,
		                                  avatar_url = EXCLUDED.avatar_url
		RETURNING id, username, avatar_url, email, discord_id, created_at, is_admin`,
		username, avatarURL, email, discordID, time.Now().UTC(),
	).Scan(
		&user.ID,
		&user.Username,
		&avatar,
		&user.Email,
		&discord,
		&user.CreatedAt,
		&user.IsAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", email, err)
	}

	user.AvatarURL = avatar.String
	user.DiscordID = discord.String
	return &user, nil
}

// GetUserByEmail returns the user or nil when no row exists.
func GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	var avatar, discordID sql.NullString
	err := database.DB.QueryRow(`
		SELECT id, username, avatar_url, email, discord_id, created_at, is_admin
		FROM users
		WHERE email = $1`, email,
	).Scan(
		&user.ID,
		&user.Username,
		&avatar,
		&user.Email,
		&discordID,
		&user.CreatedAt,
		&user.IsAdmin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}

	user.AvatarURL = avatar.String
	user.DiscordID = discordID.String
	return &user, nil
}
