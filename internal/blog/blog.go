// Package blog adapts a WordPress REST content feed into normalized posts.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"facet/internal/core"
	"facet/internal/logger"
	"facet/internal/textproc"
)

const (
	postsPath      = "/wp-json/wp/v2/posts"
	categoriesPath = "/wp-json/wp/v2/categories"

	maxPerPage    = 100
	excerptMaxLen = 200
)

// ErrUnavailable indicates the adapter has no base URL configured.
var ErrUnavailable = errors.New("blog: adapter not configured")

// Client talks to one WordPress site.
type Client struct {
	rest *resty.Client
	log  zerolog.Logger
}

// NewClient builds a Client for the given site base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, ErrUnavailable
	}
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rest: rest, log: logger.With("blog")}, nil
}

// Query filters a post listing.
type Query struct {
	Count    int    // Posts per page, clamped to the provider maximum
	Page     int    // 1-based page number
	Category string // Category slug, resolved to an id before listing
	Search   string // Free-text search term
}

// Recent lists published posts matching the query, newest first. A category
// slug that does not exist yields an empty list rather than an error.
func (c *Client) Recent(ctx context.Context, q Query) ([]core.BlogPost, error) {
	count := q.Count
	if count <= 0 {
		count = 10
	}
	if count > maxPerPage {
		count = maxPerPage
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	params := map[string]string{
		"per_page": strconv.Itoa(count),
		"page":     strconv.Itoa(page),
		"_embed":   "true",
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Category != "" {
		id, found, err := c.categoryID(ctx, q.Category)
		if err != nil {
			return nil, err
		}
		if !found {
			c.log.Warn().Str("slug", q.Category).Msg("category slug not found")
			return []core.BlogPost{}, nil
		}
		params["categories"] = strconv.Itoa(id)
	}

	var raw []wpPost
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&raw).
		Get(postsPath)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing posts: provider returned %s", resp.Status())
	}

	posts := make([]core.BlogPost, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, normalizePost(p))
	}
	c.log.Debug().Int("count", len(posts)).Int("page", page).Msg("listed blog posts")
	return posts, nil
}

// Categories lists the site's categories, most-used first.
func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var raw []wpCategory
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page": "100",
			"orderby":  "count",
			"order":    "desc",
		}).
		SetResult(&raw).
		Get(categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing categories: provider returned %s", resp.Status())
	}

	categories := make([]core.Category, 0, len(raw))
	for _, cat := range raw {
		categories = append(categories, core.Category{ID: cat.ID, Name: textproc.StripHTML(cat.Name), Slug: cat.Slug, Count: cat.Count})
	}
	return categories, nil
}

// categoryID resolves a category slug to its numeric id.
func (c *Client) categoryID(ctx context.Context, slug string) (int, bool, error) {
	var raw []wpCategory
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("slug", slug).
		SetResult(&raw).
		Get(categoriesPath)
	if err != nil {
		return 0, false, fmt.Errorf("resolving category %q: %w", slug, err)
	}
	if resp.IsError() {
		return 0, false, fmt.Errorf("resolving category %q: provider returned %s", slug, resp.Status())
	}
	if len(raw) == 0 {
		return 0, false, nil
	}
	return raw[0].ID, true, nil
}

// Provider response shapes.

type wpCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID       int         `json:"id"`
	Date     string      `json:"date"`
	Slug     string      `json:"slug"`
	Link     string      `json:"link"`
	Title    wpRendered  `json:"title"`
	Excerpt  wpRendered  `json:"excerpt"`
	Embedded *wpEmbedded `json:"_embedded"`
}

type wpEmbedded struct {
	Author []struct {
		Name string `json:"name"`
	} `json:"author"`
	FeaturedMedia []wpMedia `json:"wp:featuredmedia"`
	Terms         [][]struct {
		Name     string `json:"name"`
		Taxonomy string `json:"taxonomy"`
	} `json:"wp:term"`
}

type wpMedia struct {
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

// normalizePost converts a provider post into the domain record: HTML
// stripped, entities decoded, excerpt truncated at a word boundary.
func normalizePost(p wpPost) core.BlogPost {
	post := core.BlogPost{
		ID:            p.ID,
		Title:         textproc.StripHTML(p.Title.Rendered),
		URL:           p.Link,
		Slug:          p.Slug,
		PublishedDate: p.Date,
	}

	excerpt := textproc.StripHTML(p.Excerpt.Rendered)
	excerpt = strings.TrimSpace(strings.TrimSuffix(excerpt, "[…]"))
	post.Excerpt = textproc.TruncateChars(excerpt, excerptMaxLen)

	if p.Embedded != nil {
		if len(p.Embedded.Author) > 0 {
			post.Author = p.Embedded.Author[0].Name
		}
		if len(p.Embedded.FeaturedMedia) > 0 {
			post.FeaturedImageURL = bestImage(p.Embedded.FeaturedMedia[0])
		}
		for _, group := range p.Embedded.Terms {
			for _, term := range group {
				if term.Taxonomy == "category" {
					post.Categories = append(post.Categories, term.Name)
				}
			}
		}
	}

	return post
}

// bestImage picks a featured image size suited to email embedding, falling
// back to the original upload.
func bestImage(m wpMedia) string {
	for _, size := range []string{"medium_large", "large", "full", "medium"} {
		if s, ok := m.MediaDetails.Sizes[size]; ok && s.SourceURL != "" {
			return s.SourceURL
		}
	}
	return m.SourceURL
}
