package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/LordDeatHunter/Movienite/database"
	"github.com/LordDeatHunter/Movienite/models"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMovieExists   = errors.New("movie already exists")
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidStatus = errors.New("invalid status value")
)

const pgUniqueViolation = "23505"

// GetMovies returns every movie ordered by title, untitled rows last,
// with the owner joined in where one exists.
func GetMovies() ([]models.Movie, error) {
	rows, err := database.DB.Query(`
		SELECT m.id,
		       m.title,
		       m.original_title,
		       m.description,
		       m.letterboxd_url,
		       m.imdb_url,
		       m.image_link,
		       m.rating,
		       m.votes,
		       m.boobies,
		       m.status,
		       m.inserted_at,
		       m.user_id,
		       u.username,
		       u.avatar_url,
		       u.discord_id
		FROM movies m
		         LEFT JOIN users u ON m.user_id = u.id
		ORDER BY m.title ASC NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}

	return movies, rows.Err()
}

// GetMovieByID returns the movie or nil when no row exists.
func GetMovieByID(id string) (*models.Movie, error) {
	row := database.DB.QueryRow(`
		SELECT m.id,
		       m.title,
		       m.original_title,
		       m.description,
		       m.letterboxd_url,
		       m.imdb_url,
		       m.image_link,
		       m.rating,
		       m.votes,
		       m.boobies,
		       m.status,
		       m.inserted_at,
		       m.user_id,
		       u.username,
		       u.avatar_url,
		       u.discord_id
		FROM movies m
		         LEFT JOIN users u ON m.user_id = u.id
		WHERE m.id = $1`, id)

	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return movie, err
}

// AddMovie persists a freshly resolved movie. Uniqueness lives on the
// primary key, so two concurrent inserts of the same id cannot both
// succeed; the loser gets ErrMovieExists.
func AddMovie(movie *models.Movie) error {
	if movie.Status == "" {
		movie.Status = models.StatusUpcoming
	}

	err := database.DB.QueryRow(`
		INSERT INTO movies (id, title, original_title, description, letterboxd_url, imdb_url, image_link, rating, votes, boobies, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING inserted_at`,
		movie.ID,
		movie.Title,
		movie.OriginalTitle,
		movie.Description,
		movie.LetterboxdURL,
		movie.IMDbURL,
		movie.ImageLink,
		movie.Rating,
		movie.Votes,
		movie.Boobies,
		movie.Status,
		movie.UserID,
	).Scan(&movie.InsertedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrMovieExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert movie %s: %w", movie.ID, err)
	}

	return nil
}

// DeleteMovie removes a movie unconditionally. Authorization is the
// caller's job.
func DeleteMovie(id string) (bool, error) {
	result, err := database.DB.Exec("DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete movie %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete movie %s: %w", id, err)
	}
	return affected > 0, nil
}

// SetMovieStatus writes an explicit status from the fixed vocabulary.
func SetMovieStatus(id, status string) (string, error) {
	if !ValidStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var newStatus string
	err := database.DB.QueryRow(
		"UPDATE movies SET status = $2 WHERE id = $1 RETURNING status",
		id, status,
	).Scan(&newStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMovieNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to set status on movie %s: %w", id, err)
	}

	return newStatus, nil
}

// CycleMovieStatus advances the movie one step along the status cycle.
// The row is locked for the read-modify-write so two concurrent cycles
// never start from the same value.
func CycleMovieStatus(id string) (string, error) {
	tx, err := database.DB.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin cycle transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow("SELECT status FROM movies WHERE id = $1 FOR UPDATE", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMovieNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read status of movie %s: %w", id, err)
	}

	next := NextStatus(current)
	if _, err := tx.Exec("UPDATE movies SET status = $2 WHERE id = $1", id, next); err != nil {
		return "", fmt.Errorf("failed to cycle status of movie %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit cycle of movie %s: %w", id, err)
	}
	return next, nil
}

// ToggleMovieBoobies flips the flag in a single update so concurrent
// toggles cannot lose each other's writes.
func ToggleMovieBoobies(id string) (bool, error) {
	var value bool
	err := database.DB.QueryRow(
		"UPDATE movies SET boobies = NOT boobies WHERE id = $1 RETURNING boobies",
		id,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrMovieNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle boobies on movie %s: %w", id, err)
	}

	return value, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var movie models.Movie
	var title, originalTitle, description, letterboxdURL, imdbURL, imageLink, votes sql.NullString
	var rating sql.NullFloat64
	var userID sql.NullInt64
	var username, avatarURL, discordID sql.NullString

	err := row.Scan(
		&movie.ID,
		&title,
		&originalTitle,
		&description,
		&letterboxdURL,
		&imdbURL,
		&imageLink,
		&rating,
		&votes,
		&movie.Boobies,
		&movie.Status,
		&movie.InsertedAt,
		&userID,
		&username,
		&avatarURL,
		&discordID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	movie.Title = title.String
	movie.OriginalTitle = originalTitle.String
	movie.Description = description.String
	movie.LetterboxdURL = letterboxdURL.String
	movie.IMDbURL = imdbURL.String
	movie.ImageLink = imageLink.String
	movie.Votes = votes.String
	if rating.Valid {
		movie.Rating = &rating.Float64
	}
	if userID.Valid {
		movie.UserID = &userID.Int64
		movie.User = &models.UserSummary{
			ID:        userID.Int64,
			Username:  username.String,
			AvatarURL: avatarURL.String,
			DiscordID: discordID.String,
		}
	}

	return &movie, nil
}
