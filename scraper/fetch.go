package scraper

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/net/html"
)

// Both IMDb and Letterboxd serve bot-detection pages to unknown user
// agents, so requests carry a browser-shaped header set.
const (
	fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	fetchAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// noFollowClient derives a client that stops at the first redirect,
// sharing the base client's transport.
func noFollowClient(base *http.Client) *http.Client {
	client := &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	if base != nil {
		client.Transport = base.Transport
	}
	return client
}

func newPageRequest(ctx context.Context, pageURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", fetchAccept)
	return req, nil
}

// fetchDocument GETs a page and parses it into an HTML node tree. Any
// transport error or non-2xx status is a fetch failure.
func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*html.Node, error) {
	req, err := newPageRequest(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	return doc, nil
}
