package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [TOKEN]",
	Short: "Validate and store a GitHub token",
	Long: `Validate a GitHub personal access token and store it in the config file.

The token is checked against the GitHub API first and only saved when it is
accepted. When TOKEN is omitted it is read from standard input, without echo on
a terminal.

The token needs the public_repo scope for public repositories, or repo for
private ones. The GITHUB_TOKEN environment variable takes precedence over the
stored token.

Examples:
  labelexim login ghp_xxxxxxxxxxxxxxxxxxxx
  labelexim login
  echo "$TOKEN" | labelexim login`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) > 0 {
		token = strings.TrimSpace(args[0])
	} else {
		if isTerminal(cmd.InOrStdin()) {
			fmt.Fprint(cmd.OutOrStdout(), "🔑 GitHub token: ")
		}
		var err error
		token, err = readSecret(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if isTerminal(cmd.InOrStdin()) {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
	if token == "" {
		return errors.New("no token given")
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newGateway(token)
	if err != nil {
		return err
	}

	info, err := client.ValidateToken(cmd.Context())
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	cfg.Token = token
	if err := cfg.SaveToPath(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Authenticated as %s\n", info.User)
	if len(info.Scopes) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  Scopes: %s\n", strings.Join(info.Scopes, ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Token saved to %s\n", path)
	return nil
}
