package github

import "context"

// LabelGateway defines the GitHub API operations the label sync relies on
type LabelGateway interface {
	// ValidateToken checks the configured token against the API
	ValidateToken(ctx context.Context) (*TokenInfo, error)

	// Label operations
	ListLabels(ctx context.Context, ref RepoRef) ([]Label, error)
	CreateLabel(ctx context.Context, ref RepoRef, label Label) error
	UpdateLabel(ctx context.Context, ref RepoRef, currentName string, update LabelUpdate) error
	DeleteLabel(ctx context.Context, ref RepoRef, name string) error
}

// ChangeType represents the type of change in a reconciliation plan
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "create"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

// Policy selects how desired labels are reconciled against current ones
type Policy string

const (
	// PolicyMerge creates missing labels and rewrites matching ones. It never deletes.
	PolicyMerge Policy = "merge"
	// PolicyOverride deletes every current label and then creates the desired set.
	PolicyOverride Policy = "override"
)

// LabelChange is a single gateway call in a reconciliation plan.
// Target is the exact current name used to address update and delete calls.
type LabelChange struct {
	Type   ChangeType   `json:"type"`
	Target string       `json:"target,omitempty"`
	Before *Label       `json:"before,omitempty"`
	After  *Label       `json:"after,omitempty"`
	Update *LabelUpdate `json:"update,omitempty"`
}

// Name returns the label name the change is about, for reporting
func (c LabelChange) Name() string {
	if c.After != nil {
		return c.After.Name
	}
	return c.Target
}

// ReconciliationPlan is the ordered list of changes needed to converge a repository
type ReconciliationPlan struct {
	Policy  Policy        `json:"policy"`
	Changes []LabelChange `json:"changes,omitempty"`
}

// Count returns how many changes of the given type the plan holds
func (p *ReconciliationPlan) Count(t ChangeType) int {
	n := 0
	for _, c := range p.Changes {
		if c.Type == t {
			n++
		}
	}
	return n
}

// HasChanges checks if the plan contains any changes
func (p *ReconciliationPlan) HasChanges() bool {
	return len(p.Changes) > 0
}
