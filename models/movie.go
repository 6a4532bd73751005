package models

import "time"

// Movie statuses cycle upcoming -> streaming -> watched -> upcoming.
const (
	StatusUpcoming  = "upcoming"
	StatusStreaming = "streaming"
	StatusWatched   = "watched"
)

// Movie is keyed by the canonical IMDb title id (e.g. "tt0133093"),
// which stays stable no matter which site the link came from.
type Movie struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	OriginalTitle string       `json:"original_title,omitempty"`
	Description   string       `json:"description"`
	LetterboxdURL string       `json:"letterboxd_url,omitempty"`
	IMDbURL       string       `json:"imdb_url"`
	ImageLink     string       `json:"image_link,omitempty"`
	Rating        *float64     `json:"rating,omitempty"`
	Votes         string       `json:"votes,omitempty"`
	Boobies       bool         `json:"boobies"`
	Status        string       `json:"status"`
	InsertedAt    time.Time    `json:"inserted_at"`
	UserID        *int64       `json:"user_id,omitempty"`
	User          *UserSummary `json:"user"`
}
