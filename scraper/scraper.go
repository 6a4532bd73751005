package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LordDeatHunter/Movienite/models"
)

// ErrUnsupportedSite means the URL's registrable domain is not one of
// the sites we can scrape. Returned before any network call is made.
var ErrUnsupportedSite = errors.New("unsupported movie site")

const fetchTimeout = 30 * time.Second

// Adapter resolves a movie page URL into a movie record. Adapters may
// delegate to each other: boxd.it redirects into Letterboxd, and
// Letterboxd resolves its film slug through an IMDb title search.
type Adapter interface {
	Resolve(ctx context.Context, pageURL string) (*models.Movie, error)
}

// Scraper dispatches normalized URLs to the adapter registered for
// their registrable domain.
type Scraper struct {
	adapters map[string]Adapter
}

func New() *Scraper {
	client := &http.Client{Timeout: fetchTimeout}

	imdb := &IMDbAdapter{
		Client:            client,
		NoRedirectClient:  noFollowClient(client),
		BaseURL:           defaultIMDbBaseURL,
		LetterboxdBaseURL: defaultLetterboxdBaseURL,
	}
	letterboxd := &LetterboxdAdapter{IMDb: imdb}
	boxd := &BoxdAdapter{Client: client, Letterboxd: letterboxd}

	return &Scraper{
		adapters: map[string]Adapter{
			"imdb.com":       imdb,
			"letterboxd.com": letterboxd,
			"boxd.it":        boxd,
		},
	}
}

// Resolve normalizes the submitted URL, picks the adapter for its
// domain and fetches the movie record.
func (s *Scraper) Resolve(ctx context.Context, rawURL string) (*models.Movie, error) {
	cleanedURL, domain, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	adapter, ok := s.adapters[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSite, domain)
	}

	return adapter.Resolve(ctx, cleanedURL)
}
