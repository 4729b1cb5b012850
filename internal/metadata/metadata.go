// Package metadata fetches Open-Graph and basic HTML metadata for manually
// pasted article links.
package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"facet/internal/core"
	"facet/internal/logger"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// FetchError describes a failed page fetch with whatever the upstream
// returned attached.
type FetchError struct {
	URL     string // The URL that failed
	Status  int    // HTTP status code, 0 for transport errors
	Message string // Upstream or transport error message
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: status %d: %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Message)
}

// Fetcher retrieves page metadata over HTTP.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

// NewFetcher creates a Fetcher with a short network timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.With("metadata"),
	}
}

// Fetch downloads pageURL and extracts its metadata. Open-Graph tags are
// preferred, with <title> and the meta description as fallbacks; publisher
// falls back to the registrable domain minus a leading "www.".
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*core.PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, Status: resp.StatusCode, Message: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Message: fmt.Sprintf("parsing HTML: %v", err)}
	}

	meta := Extract(doc, pageURL)
	f.log.Debug().Str("url", pageURL).Str("title", meta.Title).Msg("fetched page metadata")
	return meta, nil
}

// Extract pulls metadata out of a parsed document. Split from Fetch so the
// tag-preference rules are testable without a network.
func Extract(doc *goquery.Document, pageURL string) *core.PageMetadata {
	meta := &core.PageMetadata{URL: pageURL}

	meta.Title = metaContent(doc, `meta[property="og:title"]`)
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	meta.Description = metaContent(doc, `meta[property="og:description"]`)
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[name="description"]`)
	}

	meta.Image = metaContent(doc, `meta[property="og:image"]`)
	meta.PublishedDate = metaContent(doc, `meta[property="article:published_time"]`)

	meta.Publisher = metaContent(doc, `meta[property="og:site_name"]`)
	if meta.Publisher == "" {
		meta.Publisher = domainOf(pageURL)
	}

	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// domainOf returns the host of rawURL with a leading "www." stripped.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
