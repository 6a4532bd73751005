package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/LordDeatHunter/Movienite/models"
)

// LetterboxdAdapter resolves a film page by turning its slug into an
// IMDb title search and delegating to the IMDb adapter. The first
// search hit wins; matches are best-effort.
type LetterboxdAdapter struct {
	IMDb *IMDbAdapter
}

func (a *LetterboxdAdapter) Resolve(ctx context.Context, pageURL string) (*models.Movie, error) {
	slug, err := filmSlugFromURL(pageURL)
	if err != nil {
		return nil, err
	}

	query := strings.ReplaceAll(slug, "-", " ")
	imdbURL, err := a.IMDb.SearchTitle(ctx, query)
	if err != nil {
		return nil, err
	}

	movie, err := a.IMDb.Resolve(ctx, imdbURL)
	if err != nil {
		return nil, err
	}

	// Keep the link the user actually submitted rather than the one
	// the IMDb adapter discovered on its own
	movie.LetterboxdURL = pageURL
	return movie, nil
}

// filmSlugFromURL extracts the slug after /film/. The path may carry a
// leading username segment (/someuser/film/the-matrix/).
func filmSlugFromURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid letterboxd url %q: %w", pageURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "film" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("no film slug in letterboxd url %q", pageURL)
}
