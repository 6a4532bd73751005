package database

import (
	"fmt"
	"strings"

	"github.com/LordDeatHunter/Movienite/config"
)

// SeedAdmins promotes every email listed in ADMIN_EMAILS to admin.
// Accounts are created by the Discord OAuth callback, so seeding only
// flips the flag on rows that already exist.
func SeedAdmins(cfg *config.Config) error {
	if cfg.AdminEmails == "" {
		return nil
	}

	for _, email := range strings.Split(cfg.AdminEmails, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		_, err := DB.Exec("UPDATE users SET is_admin = TRUE WHERE email = $1", email)
		if err != nil {
			return fmt.Errorf("failed to promote admin %s: %w", email, err)
		}
	}

	return nil
}
