// Package server exposes the newsletter assembly API over HTTP. Every
// adapter dependency is optional; routes whose adapter is missing respond
// 503 with a human-readable error instead of failing at startup.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"facet/internal/aggregate"
	"facet/internal/blog"
	"facet/internal/config"
	"facet/internal/deliver"
	"facet/internal/logger"
	"facet/internal/metadata"
	"facet/internal/pricehunt"
	"facet/internal/research"
	"facet/internal/store"
	"facet/internal/visual"
	"facet/internal/youtube"
)

// Deps carries the adapters the routes are built on. Nil entries are legal;
// the corresponding routes report unavailable.
type Deps struct {
	YouTube    *youtube.Client
	Blog       *blog.Client
	Search     research.Provider
	Pipeline   *pricehunt.Pipeline
	Aggregator *aggregate.Aggregator
	Images     *visual.ImageClient
	Metadata   *metadata.Fetcher
	Drafts     *store.Drafts
	Saved      *store.SavedItems
	Blobs      store.BlobStore
	PublicURL  func(key string) string
	Email      *deliver.EmailSender
	CRM        *deliver.CRMClient
}

// Server is the HTTP server for the newsletter API.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	deps       Deps
	cfg        config.Server
	log        zerolog.Logger
}

// New builds a Server with middleware and routes configured.
func New(deps Deps, cfg config.Server) *Server {
	s := &Server{
		router: chi.NewRouter(),
		deps:   deps,
		cfg:    cfg,
		log:    logger.With("server"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: config.Duration(cfg.RequestTimeout, 60*time.Second),
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(config.Duration(s.cfg.RequestTimeout, 60*time.Second)))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/youtube", func(r chi.Router) {
			r.Get("/videos", s.handleYouTubeVideos)
			r.Post("/video-by-url", s.handleYouTubeVideoByURL)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/posts", s.handleBlogPosts)
			r.Get("/categories", s.handleBlogCategories)
		})

		r.Post("/search", s.handleSearch)

		r.Route("/guess-the-price", func(r chi.Router) {
			r.Post("/search", s.handlePriceSearch)
			r.Post("/generate-details", s.handlePriceDetails)
		})

		r.Post("/generate-newsletter", s.handleGenerateNewsletter)
		r.Post("/generate-quick-tip", s.handleGenerateQuickTip)
		r.Post("/rewrite-content", s.handleRewriteContent)
		r.Post("/check-brand-guidelines", s.handleBrandCheck)
		r.Post("/generate-subject-lines", s.handleSubjectLines)

		r.Post("/generate-image-prompts", s.handleImagePrompts)
		r.Post("/generate-images", s.handleGenerateImages)
		r.Post("/generate-single-image", s.handleGenerateSingleImage)
		r.Post("/resize-image", s.handleResizeImage)
		r.Post("/upload-images", s.handleUploadImages)

		r.Post("/fetch-article-metadata", s.handleFetchMetadata)
		r.Post("/render-email-template", s.handleRenderEmail)

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", s.handleSaveDraft)
			r.Get("/", s.handleListDrafts)
			r.Get("/load", s.handleLoadDraft)
			r.Post("/publish", s.handlePublishDraft)
			r.Delete("/", s.handleDeleteDraft)
		})
		r.Get("/published", s.handleListPublished)
		r.Get("/published/load", s.handleLoadPublished)

		r.Route("/saved-articles", func(r chi.Router) {
			r.Get("/", s.handleListSaved)
			r.Post("/", s.handleAddSaved)
			r.Delete("/", s.handleRemoveSaved)
		})

		r.Post("/send-preview", s.handleSendPreview)
		r.Post("/push-to-crm", s.handlePushToCRM)
	})
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Router exposes the chi router for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
