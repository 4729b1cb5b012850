// Package handlers wires the CLI commands.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facet/internal/config"
	"facet/internal/logger"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Facet assembles a monthly consumer jewelry newsletter.",
	Long: `Facet is the backend for a monthly consumer jewelry newsletter.

It pulls videos, blog posts, and research findings from external providers,
generates and cleans newsletter copy, renders the HTML email, and pushes
drafts to storage and delivery channels. Run 'facet serve' to start the
HTTP API the editor UI talks to.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .facet.yaml)")
	rootCmd.AddCommand(NewServeCmd())
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})
}
