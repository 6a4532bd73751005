package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeURL prepends https:// when the scheme is missing, reduces
// the host to its registrable domain (www.imdb.com -> imdb.com) and
// rewrites the URL to use it, so every subdomain variant of a site
// normalizes to the same URL.
func NormalizeURL(rawURL string) (cleanedURL string, domain string, err error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedSite, rawURL)
	}

	domain, err = publicsuffix.EffectiveTLDPlusOne(parsed.Hostname())
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedSite, parsed.Hostname())
	}

	parsed.Host = domain
	return parsed.String(), domain, nil
}
