package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Reconciler converges a repository's labels to a desired set through a LabelGateway
type Reconciler struct {
	client   LabelGateway
	logger   *slog.Logger
	progress func(LabelChange)
}

// ReconcilerOption configures a Reconciler
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger used for per-operation debug output
func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after every applied change
func WithProgress(fn func(LabelChange)) ReconcilerOption {
	return func(r *Reconciler) {
		r.progress = fn
	}
}

// NewReconciler creates a new reconciler instance
func NewReconciler(client LabelGateway, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplySummary counts the changes that were applied successfully
type ApplySummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// Total returns the number of applied changes
func (s ApplySummary) Total() int {
	return s.Created + s.Updated + s.Deleted
}

// indexedLabel is a current label keyed by its normalized name
type indexedLabel struct {
	label Label
	// name is the exact stored name, needed to address the label on the wire
	name string
}

// labelIndex maps normalized names to current labels, keeping first-seen key order
type labelIndex struct {
	keys    []string
	entries map[string]indexedLabel
}

func newLabelIndex(labels []Label) *labelIndex {
	idx := &labelIndex{entries: make(map[string]indexedLabel, len(labels))}
	for _, l := range labels {
		key := NormalizeName(l.Name)
		if _, ok := idx.entries[key]; !ok {
			idx.keys = append(idx.keys, key)
		}
		// Last write wins; GitHub does not allow case-insensitive duplicates.
		idx.entries[key] = indexedLabel{label: l, name: l.Name}
	}
	return idx
}

func (idx *labelIndex) lookup(name string) (indexedLabel, bool) {
	e, ok := idx.entries[NormalizeName(name)]
	return e, ok
}

// Plan compares the desired labels with the current ones and returns the
// changes needed under the given policy. Desired order is preserved.
func Plan(desired, current []Label, policy Policy) *ReconciliationPlan {
	if policy == "" {
		policy = PolicyMerge
	}

	plan := &ReconciliationPlan{Policy: policy}
	idx := newLabelIndex(current)

	switch policy {
	case PolicyOverride:
		for _, key := range idx.keys {
			e := idx.entries[key]
			before := e.label
			plan.Changes = append(plan.Changes, LabelChange{
				Type:   ChangeTypeDelete,
				Target: e.name,
				Before: &before,
			})
		}
		for _, l := range desired {
			after := l
			plan.Changes = append(plan.Changes, LabelChange{
				Type:  ChangeTypeCreate,
				After: &after,
			})
		}

	default:
		for _, l := range desired {
			after := l
			e, ok := idx.lookup(l.Name)
			if !ok {
				plan.Changes = append(plan.Changes, LabelChange{
					Type:  ChangeTypeCreate,
					After: &after,
				})
				continue
			}

			// Every match is rewritten, even when nothing differs.
			before := e.label
			update := RenameTo(l)
			plan.Changes = append(plan.Changes, LabelChange{
				Type:   ChangeTypeUpdate,
				Target: e.name,
				Before: &before,
				After:  &after,
				Update: &update,
			})
		}
	}

	return plan
}

// Apply executes the plan one change at a time. The first failure aborts the
// run and is returned together with a summary of what was already applied;
// nothing is rolled back.
func (r *Reconciler) Apply(ctx context.Context, ref RepoRef, plan *ReconciliationPlan) (*ApplySummary, error) {
	summary := &ApplySummary{}

	for _, change := range plan.Changes {
		if err := ctx.Err(); err != nil {
			return summary, &OperationError{Type: change.Type, Label: change.Name(), Err: err}
		}

		r.logger.Debug("applying label change",
			"repo", ref.String(),
			"type", string(change.Type),
			"label", change.Name(),
			"target", change.Target)

		if err := r.applyChange(ctx, ref, change); err != nil {
			r.logger.Debug("label change failed", "type", string(change.Type), "label", change.Name(), "error", err)
			return summary, &OperationError{Type: change.Type, Label: change.Name(), Err: err}
		}

		switch change.Type {
		case ChangeTypeCreate:
			summary.Created++
		case ChangeTypeUpdate:
			summary.Updated++
		case ChangeTypeDelete:
			summary.Deleted++
		}

		if r.progress != nil {
			r.progress(change)
		}
	}

	return summary, nil
}

func (r *Reconciler) applyChange(ctx context.Context, ref RepoRef, change LabelChange) error {
	switch change.Type {
	case ChangeTypeCreate:
		if change.After == nil {
			return fmt.Errorf("create change without a label")
		}
		return r.client.CreateLabel(ctx, ref, *change.After)
	case ChangeTypeUpdate:
		if change.Update == nil {
			return fmt.Errorf("update change for %q without a payload", change.Target)
		}
		return r.client.UpdateLabel(ctx, ref, change.Target, *change.Update)
	case ChangeTypeDelete:
		return r.client.DeleteLabel(ctx, ref, change.Target)
	default:
		return fmt.Errorf("unknown change type: %s", change.Type)
	}
}

// Reconcile fetches the current labels, plans against desired and applies the
// plan in one call. Callers that need to show or confirm the plan before it
// runs use Plan and Apply separately.
func (r *Reconciler) Reconcile(ctx context.Context, ref RepoRef, desired []Label, policy Policy) (*ApplySummary, error) {
	current, err := r.client.ListLabels(ctx, ref)
	if err != nil {
		return &ApplySummary{}, fmt.Errorf("failed to list labels for %s: %w", ref, err)
	}

	plan := Plan(desired, current, policy)
	r.logger.Debug("planned label changes",
		"repo", ref.String(),
		"policy", string(plan.Policy),
		"creates", plan.Count(ChangeTypeCreate),
		"updates", plan.Count(ChangeTypeUpdate),
		"deletes", plan.Count(ChangeTypeDelete))

	return r.Apply(ctx, ref, plan)
}
