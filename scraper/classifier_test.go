package scraper

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name       string
		rawURL     string
		wantURL    string
		wantDomain string
	}{
		{
			name:       "strips www subdomain",
			rawURL:     "https://www.imdb.com/title/tt0133093/",
			wantURL:    "https://imdb.com/title/tt0133093/",
			wantDomain: "imdb.com",
		},
		{
			name:       "prepends https when scheme missing",
			rawURL:     "imdb.com/title/tt0133093/",
			wantURL:    "https://imdb.com/title/tt0133093/",
			wantDomain: "imdb.com",
		},
		{
			name:       "letterboxd film page",
			rawURL:     "https://letterboxd.com/film/the-matrix/",
			wantURL:    "https://letterboxd.com/film/the-matrix/",
			wantDomain: "letterboxd.com",
		},
		{
			name:       "boxd short link keeps two-label domain",
			rawURL:     "https://boxd.it/2a1m",
			wantURL:    "https://boxd.it/2a1m",
			wantDomain: "boxd.it",
		},
		{
			name:       "query and fragment survive normalization",
			rawURL:     "https://m.imdb.com/title/tt0133093/?ref_=nv_sr_srsg_0#top",
			wantURL:    "https://imdb.com/title/tt0133093/?ref_=nv_sr_srsg_0#top",
			wantDomain: "imdb.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotDomain, err := NormalizeURL(tt.rawURL)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) error: %v", tt.rawURL, err)
			}
			if gotURL != tt.wantURL {
				t.Errorf("url = %q, want %q", gotURL, tt.wantURL)
			}
			if gotDomain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", gotDomain, tt.wantDomain)
			}
		})
	}
}

func TestNormalizeURLRejectsUnparseableHosts(t *testing.T) {
	for _, rawURL := range []string{"http://localhost/movie", "not a url at all"} {
		if _, _, err := NormalizeURL(rawURL); !errors.Is(err, ErrUnsupportedSite) {
			t.Errorf("NormalizeURL(%q) error = %v, want ErrUnsupportedSite", rawURL, err)
		}
	}
}

func TestNewWiresRedirectProbeClient(t *testing.T) {
	sc := New()

	imdb, ok := sc.adapters["imdb.com"].(*IMDbAdapter)
	if !ok {
		t.Fatal("imdb.com adapter is not an IMDbAdapter")
	}
	if imdb.NoRedirectClient == nil || imdb.NoRedirectClient.CheckRedirect == nil {
		t.Fatal("imdb adapter has no redirect-stopping client")
	}
	if err := imdb.NoRedirectClient.CheckRedirect(nil, nil); !errors.Is(err, http.ErrUseLastResponse) {
		t.Errorf("CheckRedirect error = %v, want http.ErrUseLastResponse", err)
	}
}

func TestScraperRejectsUnknownDomainsWithoutNetwork(t *testing.T) {
	// The default scraper points at the real sites; an unsupported
	// domain must be rejected before any request is made.
	sc := New()

	for _, rawURL := range []string{
		"https://www.rottentomatoes.com/m/the_matrix",
		"https://google.com/search?q=the+matrix",
		"themoviedb.org/movie/603",
	} {
		if _, err := sc.Resolve(context.Background(), rawURL); !errors.Is(err, ErrUnsupportedSite) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnsupportedSite", rawURL, err)
		}
	}
}
