package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	Long: `Remove the stored GitHub token. The config file itself is kept.

A token set through the GITHUB_TOKEN environment variable is not affected.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.HasToken() {
		fmt.Fprintf(cmd.OutOrStdout(), "ℹ️  No token stored in %s\n", path)
		return nil
	}

	cfg.Token = ""
	if err := cfg.SaveToPath(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged out, token removed from %s\n", path)
	return nil
}
