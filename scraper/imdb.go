package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/LordDeatHunter/Movienite/models"
	"golang.org/x/net/html"
)

const (
	defaultIMDbBaseURL       = "https://www.imdb.com"
	defaultLetterboxdBaseURL = "https://letterboxd.com"
)

// IMDbAdapter scrapes a title page directly. The canonical movie id is
// the title token from the URL path, so every link to the same title
// resolves to the same record.
type IMDbAdapter struct {
	Client            *http.Client
	NoRedirectClient  *http.Client
	BaseURL           string
	LetterboxdBaseURL string
}

func (a *IMDbAdapter) Resolve(ctx context.Context, pageURL string) (*models.Movie, error) {
	id, err := titleIDFromURL(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := fetchDocument(ctx, a.Client, pageURL)
	if err != nil {
		return nil, err
	}

	titleNode := findByClass(doc, "span", "hero__primary-text")
	if titleNode == nil {
		return nil, fmt.Errorf("no title found on imdb page for %s", id)
	}
	title := textContent(titleNode)

	// Only present when the localized and original titles differ
	originalTitle := ""
	if node := findByAttr(doc, "div", "data-testid", "hero-title-block__original-title"); node != nil {
		originalTitle = strings.TrimPrefix(textContent(node), "Original title: ")
	}

	plotNode := findByAttr(doc, "p", "data-testid", "plot")
	if plotNode == nil {
		return nil, fmt.Errorf("no plot found on imdb page for %s", id)
	}
	descriptionNode := findByAttr(plotNode, "span", "role", "presentation")
	if descriptionNode == nil {
		return nil, fmt.Errorf("no plot text found on imdb page for %s", id)
	}
	description := textContent(descriptionNode)

	imageLink := ""
	if poster := findByAttr(doc, "div", "data-testid", "hero-media__poster"); poster != nil {
		if img := findElement(poster, func(el *html.Node) bool { return el.Data == "img" }); img != nil {
			imageLink = attrValue(img, "src")
		}
	}

	rating, votes, err := parseAggregateRating(doc)
	if err != nil {
		return nil, err
	}

	return &models.Movie{
		ID:            id,
		Title:         title,
		OriginalTitle: originalTitle,
		Description:   description,
		LetterboxdURL: a.lookupLetterboxdURL(ctx, id),
		IMDbURL:       fmt.Sprintf("%s/title/%s/", defaultIMDbBaseURL, id),
		ImageLink:     imageLink,
		Rating:        rating,
		Votes:         votes,
		Boobies:       false,
		Status:        models.StatusUpcoming,
	}, nil
}

// SearchTitle runs an IMDb title search and returns the page URL of
// the first result. The first hit is a best-effort match; nothing
// verifies it is actually the searched movie.
func (a *IMDbAdapter) SearchTitle(ctx context.Context, query string) (string, error) {
	searchURL := fmt.Sprintf("%s/find/?q=%s&s=tt", a.BaseURL, url.QueryEscape(query))

	doc, err := fetchDocument(ctx, a.Client, searchURL)
	if err != nil {
		return "", err
	}

	href := findLink(doc, func(href string) bool {
		return strings.Contains(href, "/title/tt")
	})
	if href == "" {
		return "", fmt.Errorf("no imdb search results for %q", query)
	}

	id, err := titleIDFromURL(href)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/title/%s/", a.BaseURL, id), nil
}

// lookupLetterboxdURL discovers the companion Letterboxd page through
// Letterboxd's /imdb/<id>/ redirect endpoint. No redirect just means
// no companion URL; it never fails the resolution.
func (a *IMDbAdapter) lookupLetterboxdURL(ctx context.Context, id string) string {
	req, err := newPageRequest(ctx, fmt.Sprintf("%s/imdb/%s/", a.LetterboxdBaseURL, id))
	if err != nil {
		return ""
	}

	client := a.NoRedirectClient
	if client == nil {
		client = noFollowClient(a.Client)
	}

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return ""
	}

	location, err := resp.Location()
	if err != nil {
		return ""
	}
	return location.String()
}

// titleIDFromURL pulls the canonical title token out of a
// /title/<id>/ path.
func titleIDFromURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid imdb url %q: %w", pageURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "title" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("no title id in imdb url %q", pageURL)
}

// parseAggregateRating reads the hero rating control, whose text is
// "<score>/10" with the vote count appended. A missing control means
// no rating; a malformed one fails the whole resolution.
func parseAggregateRating(doc *html.Node) (*float64, string, error) {
	node := findByAttr(doc, "div", "data-testid", "hero-rating-bar__aggregate-rating")
	if node == nil {
		return nil, "", nil
	}

	text := textContent(node)
	idx := strings.Index(text, "/10")
	if idx < 0 {
		return nil, "", fmt.Errorf("unexpected rating format %q", text)
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(text[:idx]), 64)
	if err != nil {
		return nil, "", fmt.Errorf("unexpected rating score in %q: %w", text, err)
	}

	votes := strings.TrimSpace(text[idx+len("/10"):])
	return &score, votes, nil
}
