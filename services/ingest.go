package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LordDeatHunter/Movienite/events"
	"github.com/LordDeatHunter/Movienite/models"
	"github.com/LordDeatHunter/Movienite/scraper"
)

// ErrFetchFailed covers every adapter failure: transport errors, bad
// statuses and unparseable pages all look the same to the caller.
var ErrFetchFailed = errors.New("failed to fetch movie data")

// Ingestor turns a submitted URL into a stored movie and announces it.
type Ingestor struct {
	Scraper *scraper.Scraper
	Hub     *events.Hub
}

func NewIngestor(sc *scraper.Scraper, hub *events.Hub) *Ingestor {
	return &Ingestor{Scraper: sc, Hub: hub}
}

// Ingest classifies and resolves the URL, attaches the submitter as
// owner when present, inserts the movie and publishes movie_added.
// Errors are one of scraper.ErrUnsupportedSite, ErrFetchFailed or
// ErrMovieExists.
func (ing *Ingestor) Ingest(ctx context.Context, rawURL string, submitter *models.User) (*models.Movie, error) {
	movie, err := ing.Scraper.Resolve(ctx, rawURL)
	if err != nil {
		if errors.Is(err, scraper.ErrUnsupportedSite) {
			return nil, err
		}
		slog.Error("Failed to fetch movie data", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if submitter != nil {
		movie.UserID = &submitter.ID
		movie.User = submitter.Summary()
	}

	if err := AddMovie(movie); err != nil {
		return nil, err
	}

	slog.Info("Movie added", "movie_id", movie.ID, "title", movie.Title)
	ing.Hub.Publish(events.Event{Type: events.TypeMovieAdded, MovieID: movie.ID})
	return movie, nil
}
