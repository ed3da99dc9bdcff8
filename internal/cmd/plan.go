package cmd

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"labelexim/pkg/github"
)

var (
	createColor = color.New(color.FgGreen)
	updateColor = color.New(color.FgYellow)
	deleteColor = color.New(color.FgRed)
)

// displayPlan shows the planned changes in a human-readable format
func displayPlan(w io.Writer, plan *github.ReconciliationPlan, ref github.RepoRef, isDryRun bool) {
	if isDryRun {
		fmt.Fprintf(w, "\n🔍 Dry-run mode: Showing planned %s import for %s\n", plan.Policy, ref)
	} else {
		fmt.Fprintf(w, "\n📋 Planned %s import for %s:\n", plan.Policy, ref)
	}

	for _, change := range plan.Changes {
		switch change.Type {
		case github.ChangeTypeCreate:
			createColor.Fprintf(w, "  + CREATE %s (#%s)", change.After.Name, change.After.Color)
			fmt.Fprintln(w, descriptionSuffix(change.After.Description))
		case github.ChangeTypeUpdate:
			name := change.Target
			if change.After != nil && change.After.Name != change.Target {
				name = fmt.Sprintf("%s → %s", change.Target, change.After.Name)
			}
			updateColor.Fprintf(w, "  ~ UPDATE %s", name)
			if change.Before != nil && change.After != nil && change.Before.Color != change.After.Color {
				fmt.Fprintf(w, " (#%s → #%s)", change.Before.Color, change.After.Color)
			}
			fmt.Fprintln(w)
		case github.ChangeTypeDelete:
			deleteColor.Fprintf(w, "  - DELETE %s", change.Target)
			fmt.Fprintln(w)
		}
	}

	if !plan.HasChanges() {
		fmt.Fprintf(w, "  No changes needed - label file is empty\n")
		return
	}

	fmt.Fprintf(w, "\nTotal changes: %d (%d to create, %d to update, %d to delete)\n",
		len(plan.Changes),
		plan.Count(github.ChangeTypeCreate),
		plan.Count(github.ChangeTypeUpdate),
		plan.Count(github.ChangeTypeDelete))

	if deletes := plan.Count(github.ChangeTypeDelete); deletes > 0 && isDryRun {
		fmt.Fprintf(w, "\n⚠️  WARNING: %d label(s) would be deleted!\n", deletes)
		fmt.Fprintf(w, "   Issues and pull requests lose these labels when they are deleted.\n")
	}
}

func descriptionSuffix(description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf(": %s", description)
}

// displayOverrideWarning explains the risk of an override import before it runs
func displayOverrideWarning(w io.Writer, plan *github.ReconciliationPlan, ref github.RepoRef) {
	fmt.Fprintf(w, "\n⚠️  WARNING: override deletes all %d existing label(s) of %s before creating %d new one(s).\n",
		plan.Count(github.ChangeTypeDelete), ref, plan.Count(github.ChangeTypeCreate))
	fmt.Fprintf(w, "   Labels are removed from every issue and pull request, and this is not atomic:\n")
	fmt.Fprintf(w, "   a failure part way through can leave the repository with no labels.\n")
}

// displaySummary shows the outcome of an apply run
func displaySummary(w io.Writer, summary *github.ApplySummary, ref github.RepoRef) {
	fmt.Fprintf(w, "\n✅ Successfully imported labels into %s\n", ref)
	fmt.Fprintf(w, "🔗 Labels: https://github.com/%s/%s/labels\n", ref.Owner, ref.Repo)
	fmt.Fprintf(w, "📊 Applied %d change(s): %d created, %d updated, %d deleted\n",
		summary.Total(), summary.Created, summary.Updated, summary.Deleted)
}

// newProgress starts a progress bar on w when it is a terminal, and returns nil otherwise
func newProgress(w io.Writer, total int) *pb.ProgressBar {
	if !isTerminal(w) {
		return nil
	}
	return pb.Simple.New(total).SetWriter(w).Start()
}
