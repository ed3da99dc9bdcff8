package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"labelexim/pkg/github"
)

var (
	importFile     string
	importOverride bool
	importYes      bool
	importDryRun   bool
)

var importCmd = &cobra.Command{
	Use:   "import [REPO]",
	Short: "Import labels into a repository",
	Long: `Import a label file into a repository.

Labels are read from the file given with --file, or as a JSON array from standard
input. The file format follows the extension: .yaml/.yml for YAML, .toml for TOML
and JSON for anything else.

MERGE (default):
  Labels are matched by name, ignoring case. Matching labels are rewritten with
  the name, description and color from the file; the rest are created. Labels
  missing from the file are left alone.

OVERRIDE (--override):
  Every existing label is deleted, then the labels from the file are created.
  This removes the labels from all issues and pull requests and is not atomic.
  On a terminal you are asked to confirm unless --yes is given.

Examples:
  labelexim import -f labels.json octocat/hello-world
  labelexim import --dry-run -f labels.yaml
  labelexim import --override --yes -f labels.json git@github.com:octocat/hello-world.git
  labelexim export octocat/source | labelexim import octocat/target`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Read labels from this file instead of standard input")
	importCmd.Flags().BoolVar(&importOverride, "override", false, "Delete all existing labels before creating the imported ones")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Do not ask for confirmation before an override import")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview changes without applying them")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ref, err := resolveRepo(args)
	if err != nil {
		return err
	}

	desired, err := readLabels(cmd.InOrStdin())
	if err != nil {
		return err
	}

	token, err := github.RequireToken(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", github.GetAuthInstructions())
		return err
	}

	client, err := newGateway(token)
	if err != nil {
		return err
	}

	policy := github.PolicyMerge
	if importOverride {
		policy = github.PolicyOverride
	}

	current, err := client.ListLabels(cmd.Context(), ref)
	if err != nil {
		return fmt.Errorf("failed to list labels for %s: %w", ref, err)
	}

	plan := github.Plan(desired, current, policy)
	out := cmd.OutOrStdout()
	displayPlan(out, plan, ref, importDryRun)

	if importDryRun || !plan.HasChanges() {
		return nil
	}

	if policy == github.PolicyOverride {
		displayOverrideWarning(cmd.ErrOrStderr(), plan, ref)

		// Standard input carries the labels when no file is given, so it cannot answer
		if importFile != "" && !importYes && isTerminal(cmd.InOrStdin()) {
			ok, err := confirm(cmd.InOrStdin(), out, "\nDelete all existing labels and continue? [y/N]: ")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "❌ Import cancelled, no changes were made\n")
				return nil
			}
		}
	}

	bar := newProgress(cmd.ErrOrStderr(), len(plan.Changes))
	reconciler := github.NewReconciler(client,
		github.WithLogger(logger),
		github.WithProgress(func(github.LabelChange) {
			if bar != nil {
				bar.Increment()
			}
		}),
	)

	summary, err := reconciler.Apply(cmd.Context(), ref, plan)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  Applied %d of %d change(s) before the failure: %d created, %d updated, %d deleted\n",
			summary.Total(), len(plan.Changes), summary.Created, summary.Updated, summary.Deleted)
		return fmt.Errorf("failed to import labels into %s: %w", ref, err)
	}

	displaySummary(out, summary, ref)
	return nil
}

// readLabels decodes the desired labels from --file or standard input
func readLabels(stdin io.Reader) ([]github.Label, error) {
	if importFile == "" {
		labels, err := github.DecodeLabels(stdin, github.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to read labels from standard input: %w", err)
		}
		return labels, nil
	}

	f, err := os.Open(importFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	labels, err := github.DecodeLabels(f, github.FormatFromPath(importFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read labels from %s: %w", importFile, err)
	}
	return labels, nil
}
