package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LordDeatHunter/Movienite/models"
)

// BoxdAdapter resolves a boxd.it short link by following its redirect
// chain and handing the final Letterboxd URL to the Letterboxd
// adapter, which rejects anything that is not a film page.
type BoxdAdapter struct {
	Client     *http.Client
	Letterboxd *LetterboxdAdapter
}

func (a *BoxdAdapter) Resolve(ctx context.Context, shortURL string) (*models.Movie, error) {
	req, err := newPageRequest(ctx, shortURL)
	if err != nil {
		return nil, err
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve short link %s: %w", shortURL, err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d resolving short link %s", resp.StatusCode, shortURL)
	}

	finalURL := resp.Request.URL.String()
	return a.Letterboxd.Resolve(ctx, finalURL)
}
