package database

import (
	"fmt"
)

func RunMigrations() error {
	usersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(500),
		email VARCHAR(255) UNIQUE NOT NULL,
		discord_id VARCHAR(50),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		is_admin BOOLEAN DEFAULT FALSE
	);
	`
	_, err := DB.Exec(usersTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	moviesTableSQL := `
	CREATE TABLE IF NOT EXISTS movies (
		id VARCHAR(50) PRIMARY KEY,
		title TEXT,
		original_title TEXT,
		description TEXT,
		letterboxd_url TEXT,
		imdb_url TEXT,
		image_link TEXT,
		rating NUMERIC(3, 1),
		votes VARCHAR(50),
		boobies BOOLEAN DEFAULT FALSE,
		status VARCHAR(20) DEFAULT 'upcoming',
		user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Migration for movies tables created before the enrichment columns
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='original_title') THEN
			ALTER TABLE movies ADD COLUMN original_title TEXT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='image_link') THEN
			ALTER TABLE movies ADD COLUMN image_link TEXT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='rating') THEN
			ALTER TABLE movies ADD COLUMN rating NUMERIC(3, 1);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='votes') THEN
			ALTER TABLE movies ADD COLUMN votes VARCHAR(50);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='status') THEN
			ALTER TABLE movies ADD COLUMN status VARCHAR(20) DEFAULT 'upcoming';
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='movies' AND column_name='user_id') THEN
			ALTER TABLE movies ADD COLUMN user_id INTEGER REFERENCES users(id) ON DELETE SET NULL;
		END IF;
	END $$;
	`
	_, err = DB.Exec(moviesTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run movies migration: %w", err)
	}

	return nil
}
