// Package research adapts a chat-completions search provider (Perplexity
// style) into normalized search results. The provider returns either
// structured JSON, or prose plus a citation-URL list that has to be paired
// back to sentences heuristically.
package research

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"facet/internal/core"
	"facet/internal/logger"
)

// ErrUnavailable indicates the provider has no API key configured.
var ErrUnavailable = errors.New("research: provider not configured")

// Provider is the search interface the aggregation pipelines depend on.
type Provider interface {
	Search(ctx context.Context, query string, opts Options) ([]core.SearchResult, error)
}

// Options tunes one search call.
type Options struct {
	TimeWindow   string // 7d, 15d, 30d, 90d (defaults to recent)
	Geography    string // Optional geographic focus woven into the prompt
	MaxResults   int    // Result cap (defaults to 4)
	SystemPrompt string // Overrides the default system prompt when set
}

// Config holds the provider connection settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client talks to the chat-completions endpoint.
type Client struct {
	rest      *resty.Client
	model     string
	maxTokens int
	log       zerolog.Logger
}

// NewClient builds a Client. Returns ErrUnavailable when no API key is set.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		rest:      rest,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("research"),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// Search runs one query against the provider and normalizes whatever shape
// comes back: a citation list is preferred, then structured JSON, then bare
// URL extraction from prose.
func (c *Client) Search(ctx context.Context, query string, opts Options) ([]core.SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 4
	}

	systemPrompt := opts.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt(opts.TimeWindow, opts.Geography, maxResults)
	}

	var parsed chatResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: query},
			},
			Temperature: 0.2,
			MaxTokens:   c.maxTokens,
		}).
		SetResult(&parsed).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search request: provider returned %s", resp.Status())
	}

	if len(parsed.Choices) == 0 {
		return []core.SearchResult{}, nil
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		return []core.SearchResult{}, nil
	}

	var results []core.SearchResult
	if len(parsed.Citations) > 0 {
		results = ParseWithCitations(content, parsed.Citations, maxResults)
	} else {
		results = parseStructured(content, maxResults)
	}

	c.log.Debug().Str("query", query).Int("results", len(results)).Msg("search completed")
	return results, nil
}

func defaultSystemPrompt(timeWindow, geography string, maxResults int) string {
	timeContext := map[string]string{
		"7d":  "from the past week",
		"15d": "from the past 2 weeks",
		"30d": "from the past month",
		"90d": "from the past 3 months",
	}[timeWindow]
	if timeContext == "" {
		timeContext = "recent"
	}

	geoContext := ""
	if geography != "" {
		geoContext = fmt.Sprintf(" Focus on %s.", geography)
	}

	return fmt.Sprintf(`You are a research assistant finding relevant news and insights.

Search for %s articles and news.%s

For each finding, provide:
1. A clear title summarizing the key point
2. The source URL (must be a real, working URL)
3. The publisher/source name
4. A 2-3 sentence summary explaining the finding

Return your findings as a JSON object with this structure:
{
    "results": [
        {
            "title": "Article title or key finding",
            "url": "https://actual-source-url.com/article",
            "publisher": "Source name",
            "published_date": "YYYY-MM-DD or null if unknown",
            "summary": "2-3 sentence summary of the article"
        }
    ]
}

Important:
- Only include results with REAL, verifiable URLs
- Include specific data points when available
- Return exactly %d results`, timeContext, geoContext, maxResults)
}

// Domain returns the host of rawURL minus a leading "www.", or "Unknown"
// when the URL does not parse.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
