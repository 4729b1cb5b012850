package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"facet/internal/aggregate"
	"facet/internal/blog"
	"facet/internal/config"
	"facet/internal/deliver"
	"facet/internal/llm"
	"facet/internal/logger"
	"facet/internal/metadata"
	"facet/internal/pricehunt"
	"facet/internal/research"
	"facet/internal/server"
	"facet/internal/store"
	"facet/internal/visual"
	"facet/internal/youtube"
)

// NewServeCmd creates the serve command for starting the HTTP API.
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the newsletter assembly HTTP API",
		Long: `Start the HTTP API the editor UI talks to.

Provider adapters are wired from configuration. Any adapter whose
credentials are missing is left unconfigured: its routes respond 503
while the rest of the API keeps working.

Examples:
  # Start on the configured port (default 8080)
  facet serve

  # Start on a custom port
  facet serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	log := logger.With("serve")
	cfg := config.Get()

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	deps := buildDeps(ctx, cfg)
	srv := server.New(deps, serverCfg)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("host", serverCfg.Host).Int("port", serverCfg.Port).Msg("server listening")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// buildDeps wires every adapter the configuration has credentials for.
// A missing credential logs a warning and leaves that adapter nil.
func buildDeps(ctx context.Context, cfg *config.Config) server.Deps {
	log := logger.With("serve")
	deps := server.Deps{
		Metadata: metadata.NewFetcher(),
	}

	yt, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.ChannelID)
	if err != nil {
		log.Warn().Err(err).Msg("youtube adapter unconfigured")
	} else {
		deps.YouTube = yt
	}

	blogClient, err := blog.NewClient(cfg.Blog.BaseURL, config.Duration(cfg.Blog.Timeout, 15*time.Second))
	if err != nil {
		log.Warn().Err(err).Msg("blog adapter unconfigured")
	} else {
		deps.Blog = blogClient
	}

	var searchProvider research.Provider
	researchClient, err := research.NewClient(research.Config{
		APIKey:    cfg.Research.APIKey,
		BaseURL:   cfg.Research.BaseURL,
		Model:     cfg.Research.Model,
		MaxTokens: cfg.Research.MaxTokens,
		Timeout:   config.Duration(cfg.Research.Timeout, 30*time.Second),
	})
	if err != nil {
		log.Warn().Err(err).Msg("research adapter unconfigured")
	} else {
		searchProvider = researchClient
	}

	var generator llm.Generator
	llmClient, err := llm.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
	if err != nil {
		log.Warn().Err(err).Msg("text generation unconfigured")
	} else {
		generator = llmClient
	}

	deps.Search = searchProvider
	deps.Pipeline = pricehunt.New(searchProvider, generator)
	deps.Aggregator = aggregate.New(generator)

	images, err := visual.NewImageClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.ImageModel)
	if err != nil {
		log.Warn().Err(err).Msg("image generation unconfigured")
	} else {
		deps.Images = images
	}

	if cfg.Storage.Bucket != "" {
		blobs, err := store.NewS3Store(ctx, store.Config{
			Endpoint:      cfg.Storage.Endpoint,
			Region:        cfg.Storage.Region,
			Bucket:        cfg.Storage.Bucket,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("blob storage unconfigured")
		} else {
			deps.Blobs = blobs
			deps.PublicURL = blobs.PublicURL
			deps.Drafts = store.NewDrafts(blobs)
			deps.Saved = store.NewSavedItems(blobs)
		}
	} else {
		log.Warn().Msg("no storage bucket configured, drafts and uploads disabled")
	}

	email, err := deliver.NewEmailSender(deliver.EmailConfig{
		APIKey:    cfg.Delivery.SendGrid.APIKey,
		FromEmail: cfg.Delivery.SendGrid.FromEmail,
		FromName:  cfg.Delivery.SendGrid.FromName,
	})
	if err != nil {
		if !errors.Is(err, deliver.ErrEmailUnavailable) {
			log.Warn().Err(err).Msg("email delivery unconfigured")
		}
	} else {
		deps.Email = email
	}

	crm, err := deliver.NewCRMClient(deliver.CRMConfig{
		BaseURL: cfg.Delivery.CRM.BaseURL,
		AppID:   cfg.Delivery.CRM.AppID,
		APIKey:  cfg.Delivery.CRM.APIKey,
	})
	if err != nil {
		if !errors.Is(err, deliver.ErrCRMUnavailable) {
			log.Warn().Err(err).Msg("crm unconfigured")
		}
	} else {
		deps.CRM = crm
	}

	return deps
}
