// Package pricehunt finds candidate pieces for the "Guess the Price"
// newsletter slot: expand the editor's topic into differently-angled
// queries, fan them out against the search provider, and merge the results.
package pricehunt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"facet/internal/core"
	"facet/internal/llm"
	"facet/internal/logger"
	"facet/internal/research"
	"facet/internal/textproc"
)

// ErrUnavailable indicates no search provider is configured. This is the
// only user-visible failure; individual query failures degrade to partial
// results.
var ErrUnavailable = errors.New("pricehunt: no search provider configured")

// searchSystemPrompt keeps the provider away from shopping results, which
// never carry the provenance the slot needs.
const searchSystemPrompt = `You are a jewelry research assistant finding remarkable individual pieces.

Find specific, named jewelry pieces (a particular ring, necklace, gemstone, or watch) with a documented story: auction records, museum pieces, celebrity jewelry, historic stones.

Strict rules:
- NEVER include shopping or e-commerce sources (no retailer product pages, no marketplaces)
- NEVER include list articles ("10 most expensive...") — only specific, named pieces
- Every result must be one concrete piece with a real source URL

Return your findings as a JSON object with this structure:
{
    "results": [
        {
            "title": "Name of the specific piece",
            "url": "https://actual-source-url.com/article",
            "publisher": "Source name",
            "published_date": "YYYY-MM-DD or null if unknown",
            "summary": "2-3 sentence story of the piece"
        }
    ]
}`

// Pipeline orchestrates query expansion, parallel search, and merging.
type Pipeline struct {
	search research.Provider
	gen    llm.Generator
	log    zerolog.Logger
}

// New builds a Pipeline. Either dependency may be nil: a nil generator
// disables expansion, a nil search provider makes Search return
// ErrUnavailable.
func New(search research.Provider, gen llm.Generator) *Pipeline {
	return &Pipeline{search: search, gen: gen, log: logger.With("pricehunt")}
}

// Search turns a loose topic into deduplicated candidate pieces.
// When expand is set the topic is first widened into three differently-
// angled queries; expansion failures of any kind fall back to the original
// topic and never abort the pipeline. Query searches run in parallel and a
// failing query only narrows the result set.
func (p *Pipeline) Search(ctx context.Context, topic string, expand bool) ([]core.SearchResult, error) {
	if p.search == nil {
		return nil, ErrUnavailable
	}

	queries := []string{topic}
	if expand && p.gen != nil {
		if expanded, err := p.expandQuery(ctx, topic); err != nil {
			p.log.Warn().Err(err).Str("topic", topic).Msg("query expansion failed, using original topic")
		} else {
			queries = expanded
		}
	}

	perQuery := make([][]core.SearchResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			results, err := p.search.Search(gctx, query, research.Options{
				MaxResults:   4,
				SystemPrompt: searchSystemPrompt,
			})
			if err != nil {
				// One query failing must not sink its siblings.
				p.log.Warn().Err(err).Str("query", query).Msg("search query failed, skipping")
				return nil
			}
			perQuery[i] = results
			return nil
		})
	}
	_ = g.Wait()

	merged := Merge(perQuery)
	p.log.Debug().Int("queries", len(queries)).Int("results", len(merged)).Msg("price hunt completed")
	return merged, nil
}

// expandQuery asks the model for exactly three differently-angled queries.
func (p *Pipeline) expandQuery(ctx context.Context, topic string) ([]string, error) {
	prompt := fmt.Sprintf(`Expand this jewelry research topic into exactly 3 differently-angled search queries: %q

Angles to consider: auction records, celebrity or royal provenance, museum exhibitions, historic stones.

Return ONLY a JSON array of exactly 3 query strings, nothing else.`, topic)

	raw, err := p.gen.Generate(ctx, prompt, llm.Options{MaxTokens: 200, Temperature: 0.7})
	if err != nil {
		return nil, err
	}

	var queries []string
	if err := textproc.ExtractJSON(raw, &queries); err != nil {
		return nil, err
	}
	if len(queries) != 3 {
		return nil, fmt.Errorf("expected 3 queries, got %d", len(queries))
	}
	for _, q := range queries {
		if len(strings.TrimSpace(q)) < 4 {
			return nil, fmt.Errorf("expansion produced a malformed query %q", q)
		}
	}
	return queries, nil
}

// Merge flattens per-query result lists in query execution order,
// deduplicating by exact URL and preserving first-seen order.
func Merge(lists [][]core.SearchResult) []core.SearchResult {
	seen := make(map[string]bool)
	merged := make([]core.SearchResult, 0)
	for _, list := range lists {
		for _, result := range list {
			if result.URL == "" || seen[result.URL] {
				continue
			}
			seen[result.URL] = true
			merged = append(merged, result)
		}
	}
	return merged
}
