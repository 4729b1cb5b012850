package server

import (
	"errors"
	"net/http"
	"strconv"

	"facet/internal/blog"
	"facet/internal/metadata"
	"facet/internal/research"
	"facet/internal/youtube"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Search == nil {
		s.respondUnavailable(w, "search provider")
		return
	}

	var req struct {
		Query      string `json:"query"`
		TimeWindow string `json:"time_window"`
		Geography  string `json:"geography"`
		MaxResults int    `json:"max_results"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 6
	}

	results, err := s.deps.Search.Search(r.Context(), req.Query, research.Options{
		TimeWindow: req.TimeWindow,
		Geography:  req.Geography,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("search failed")
		s.respondError(w, http.StatusBadGateway, "searching: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"results": results, "count": len(results)})
}

func (s *Server) handleYouTubeVideos(w http.ResponseWriter, r *http.Request) {
	if s.deps.YouTube == nil {
		s.respondUnavailable(w, "youtube")
		return
	}

	opts := youtube.ListOptions{
		Sort:      youtube.SortRecent,
		PageToken: r.URL.Query().Get("page_token"),
	}
	if r.URL.Query().Get("sort") == "popular" {
		opts.Sort = youtube.SortPopular
	}
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "max_results must be a positive integer")
			return
		}
		opts.MaxResults = n
	}

	result, err := s.deps.YouTube.List(r.Context(), opts)
	if err != nil {
		s.log.Error().Err(err).Msg("youtube list failed")
		s.respondError(w, http.StatusBadGateway, "fetching videos: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		"videos":          result.Videos,
		"next_page_token": result.NextPageToken,
	})
}

func (s *Server) handleYouTubeVideoByURL(w http.ResponseWriter, r *http.Request) {
	if s.deps.YouTube == nil {
		s.respondUnavailable(w, "youtube")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	video, err := s.deps.YouTube.ByURL(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, youtube.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "no video found for that url")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"video": video})
}

func (s *Server) handleBlogPosts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Blog == nil {
		s.respondUnavailable(w, "blog")
		return
	}

	q := blog.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("count"); raw != "" {
		q.Count, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		q.Page, _ = strconv.Atoi(raw)
	}

	posts, err := s.deps.Blog.Recent(r.Context(), q)
	if err != nil {
		s.log.Error().Err(err).Msg("blog fetch failed")
		s.respondError(w, http.StatusBadGateway, "fetching posts: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"posts": posts, "count": len(posts)})
}

func (s *Server) handleBlogCategories(w http.ResponseWriter, r *http.Request) {
	if s.deps.Blog == nil {
		s.respondUnavailable(w, "blog")
		return
	}

	categories, err := s.deps.Blog.Categories(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "fetching categories: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"categories": categories})
}

func (s *Server) handleFetchMetadata(w http.ResponseWriter, r *http.Request) {
	if s.deps.Metadata == nil {
		s.respondUnavailable(w, "metadata fetcher")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	meta, err := s.deps.Metadata.Fetch(r.Context(), req.URL)
	if err != nil {
		var fetchErr *metadata.FetchError
		if errors.As(err, &fetchErr) {
			s.respondError(w, http.StatusBadGateway, fetchErr.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"metadata": meta})
}
