package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestExtractPrefersOpenGraph(t *testing.T) {
	html := `<html><head>
		<title>Fallback Title</title>
		<meta name="description" content="Fallback description">
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG description">
		<meta property="og:image" content="https://example.com/cover.jpg">
		<meta property="og:site_name" content="Example Magazine">
		<meta property="article:published_time" content="2026-06-01T08:00:00Z">
	</head><body></body></html>`

	meta := Extract(parseDoc(t, html), "https://www.example.com/story")

	if meta.Title != "OG Title" {
		t.Errorf("Title = %q, want OG Title", meta.Title)
	}
	if meta.Description != "OG description" {
		t.Errorf("Description = %q, want OG description", meta.Description)
	}
	if meta.Image != "https://example.com/cover.jpg" {
		t.Errorf("Image = %q", meta.Image)
	}
	if meta.Publisher != "Example Magazine" {
		t.Errorf("Publisher = %q, want Example Magazine", meta.Publisher)
	}
	if meta.PublishedDate != "2026-06-01T08:00:00Z" {
		t.Errorf("PublishedDate = %q", meta.PublishedDate)
	}
}

func TestExtractFallbacks(t *testing.T) {
	html := `<html><head>
		<title>Plain Title</title>
		<meta name="description" content="Plain description">
	</head><body></body></html>`

	meta := Extract(parseDoc(t, html), "https://www.example.com/story")

	if meta.Title != "Plain Title" {
		t.Errorf("Title = %q, want Plain Title", meta.Title)
	}
	if meta.Description != "Plain description" {
		t.Errorf("Description = %q, want Plain description", meta.Description)
	}
	if meta.Publisher != "example.com" {
		t.Errorf("Publisher = %q, want example.com (www stripped)", meta.Publisher)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", fetchErr.Status)
	}
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><meta property="og:title" content="Served Title"></head></html>`))
	}))
	defer srv.Close()

	meta, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if meta.Title != "Served Title" {
		t.Errorf("Title = %q, want Served Title", meta.Title)
	}
}
