package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labelexim/pkg/github"
)

var exportFile string

var exportCmd = &cobra.Command{
	Use:   "export [REPO]",
	Short: "Export a repository's labels",
	Long: `Export all issue labels of a repository.

Labels are written as a pretty-printed JSON array to standard output, or to the
file given with --file. The file format follows the extension: .yaml/.yml for
YAML, .toml for TOML and JSON for anything else.

A token is not required for public repositories.

Examples:
  labelexim export octocat/hello-world
  labelexim export -f labels.yaml https://github.com/octocat/hello-world
  labelexim export > labels.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Write labels to this file instead of standard output")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ref, err := resolveRepo(args)
	if err != nil {
		return err
	}

	client, err := newGateway(github.GetToken(cfg))
	if err != nil {
		return err
	}

	labels, err := client.ListLabels(cmd.Context(), ref)
	if err != nil {
		return fmt.Errorf("failed to list labels for %s: %w", ref, err)
	}

	if exportFile == "" {
		return github.EncodeLabels(cmd.OutOrStdout(), labels, github.FormatJSON)
	}

	// Encode fully before touching the file so a failure leaves it as it was
	var buf bytes.Buffer
	if err := github.EncodeLabels(&buf, labels, github.FormatFromPath(exportFile)); err != nil {
		return err
	}
	if err := os.WriteFile(exportFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d label(s) from %s to %s\n", len(labels), ref, exportFile)
	return nil
}
