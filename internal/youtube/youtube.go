// Package youtube adapts the YouTube Data API into normalized video records.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"facet/internal/core"
	"facet/internal/logger"
)

// hardMax is the provider's per-page result ceiling.
const hardMax = 50

var (
	// ErrUnavailable indicates the adapter has no API key configured.
	ErrUnavailable = errors.New("youtube: adapter not configured")
	// ErrNotFound indicates the URL or id did not resolve to a video.
	ErrNotFound = errors.New("youtube: video not found")
)

// SortMode selects the listing order.
type SortMode string

const (
	SortRecent  SortMode = "recent"  // Provider order, newest first; token meaningful
	SortPopular SortMode = "popular" // Ranked by view count within an over-fetched pool
)

// ListOptions controls a channel listing call.
type ListOptions struct {
	Sort       SortMode // recent (default) or popular
	MaxResults int64    // Result cap; clamped to the provider maximum
	PageToken  string   // Opaque cursor, passed through verbatim (recent only)
}

// ListResult is one page of normalized videos.
type ListResult struct {
	Videos        []core.Video `json:"videos"`
	NextPageToken string       `json:"next_page_token"` // Empty when exhausted
}

// Client wraps the YouTube Data API for one channel.
type Client struct {
	svc       *ytapi.Service
	channelID string
	log       zerolog.Logger
}

// NewClient builds a Client. Returns ErrUnavailable when no API key is set
// so callers can report the adapter as unavailable instead of failing later.
func NewClient(ctx context.Context, apiKey, channelID string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &Client{svc: svc, channelID: channelID, log: logger.With("youtube")}, nil
}

// List returns channel videos in the requested order. Popular mode
// over-fetches twice the requested count (capped at the provider maximum),
// ranks the pool by view count, and truncates; its page token is always
// exhausted because the ranking only holds within the fetched pool.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	count := opts.MaxResults
	if count <= 0 {
		count = 10
	}
	if count > hardMax {
		count = hardMax
	}

	fetchCount := count
	if opts.Sort == SortPopular {
		fetchCount = count * 2
		if fetchCount > hardMax {
			fetchCount = hardMax
		}
	}

	search := c.svc.Search.List([]string{"id"}).
		ChannelId(c.channelID).
		Order("date").
		Type("video").
		MaxResults(fetchCount)
	if opts.PageToken != "" && opts.Sort != SortPopular {
		search = search.PageToken(opts.PageToken)
	}

	searchResp, err := search.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("searching channel %s: %w", c.channelID, err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	videos, err := c.details(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Videos: videos, NextPageToken: searchResp.NextPageToken}
	if opts.Sort == SortPopular {
		result.Videos = rankByViews(result.Videos, int(count))
		result.NextPageToken = ""
	}

	c.log.Debug().Int("count", len(result.Videos)).Str("sort", string(opts.Sort)).Msg("listed channel videos")
	return result, nil
}

// ByURL resolves a pasted video URL to a normalized record. Unrecognized URL
// shapes and unknown ids both return ErrNotFound.
func (c *Client) ByURL(ctx context.Context, rawURL string) (*core.Video, error) {
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, ErrNotFound
	}
	videos, err := c.details(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNotFound
	}
	return &videos[0], nil
}

// details batch-fetches full video records for the given ids.
func (c *Client) details(ctx context.Context, ids []string) ([]core.Video, error) {
	if len(ids) == 0 {
		return []core.Video{}, nil
	}

	resp, err := c.svc.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetching video details: %w", err)
	}

	videos := make([]core.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, Normalize(item))
	}
	return videos, nil
}

// Normalize converts a provider video into the domain record.
func Normalize(v *ytapi.Video) core.Video {
	video := core.Video{
		ID:  v.Id,
		URL: "https://www.youtube.com/watch?v=" + v.Id,
	}
	if v.Snippet != nil {
		video.Title = v.Snippet.Title
		video.Description = v.Snippet.Description
		video.ChannelTitle = v.Snippet.ChannelTitle
		video.PublishedAt = v.Snippet.PublishedAt
		video.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
	}
	if v.Statistics != nil {
		video.ViewCount = v.Statistics.ViewCount
		video.LikeCount = v.Statistics.LikeCount
	}
	if v.ContentDetails != nil {
		video.Duration = v.ContentDetails.Duration
	}
	return video
}

// bestThumbnail picks the highest-resolution thumbnail available.
func bestThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*ytapi.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// rankByViews sorts videos by view count descending and truncates to max.
// The sort is stable so equal view counts keep their fetch order.
func rankByViews(videos []core.Video, max int) []core.Video {
	ranked := make([]core.Video, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewCount > ranked[j].ViewCount
	})
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// ExtractVideoID pulls a video id from the URL shapes users paste:
// watch?v=, youtu.be/, /shorts/, and /embed/. The URL is parsed
// structurally; unrecognized shapes report ok=false.
func ExtractVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtu.be":
		if id := firstSegment(u.Path); id != "" {
			return id, true
		}
	case "youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return id, true
			}
			return "", false
		}
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := firstSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
					return id, true
				}
			}
		}
	}
	return "", false
}

func firstSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.Index(path, "/"); idx != -1 {
		path = path[:idx]
	}
	return path
}
