package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"labelexim/pkg/github"
)

var (
	configPath string
	apiURL     string
	verbose    bool

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "labelexim",
	Short: "Export and import GitHub issue labels",
	Long: `Labelexim keeps the issue labels of a GitHub repository in sync with a local file.

It exports a repository's labels to JSON, YAML or TOML, and imports a label file
back into a repository. Imports either merge into the existing labels or replace
them entirely.

REPO may be given as owner/repo, https://github.com/owner/repo(.git) or
git@github.com:owner/repo(.git). When omitted, the origin remote of the current
git repository is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

// newGateway builds the label gateway for a token. An empty token gives an anonymous client.
var newGateway = func(token string) (github.LabelGateway, error) {
	client := github.NewClient(token)
	client.SetLogger(logger)

	if apiURL != "" {
		if err := client.SetBaseURL(apiURL); err != nil {
			return nil, fmt.Errorf("invalid API URL: %w", err)
		}
	}

	return client, nil
}

// Execute runs the root command and exits with status 1 on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default <user config dir>/github-labelexim.json)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", os.Getenv("GITHUB_API_URL"), "GitHub API base URL, for GitHub Enterprise")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
