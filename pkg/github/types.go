package github

// Label represents a repository issue label
type Label struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Color       Color  `json:"color" yaml:"color" toml:"color"`
}

// LabelUpdate is the request body for editing a label addressed by its current name.
// Description and color are always rewritten; NewName is only sent when set.
type LabelUpdate struct {
	NewName     *string `json:"new_name,omitempty"`
	Description string  `json:"description"`
	Color       Color   `json:"color"`
}

// RenameTo builds an update that renames the addressed label to label.Name
// and rewrites its description and color.
func RenameTo(label Label) LabelUpdate {
	name := label.Name
	return LabelUpdate{
		NewName:     &name,
		Description: label.Description,
		Color:       label.Color,
	}
}

// RepoRef identifies a GitHub repository
type RepoRef struct {
	Owner string
	Repo  string
}

// String renders the reference in owner/repo form
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// TokenInfo contains information about the authenticated token
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// NormalizeName folds a label name for comparison. GitHub treats label names
// case-insensitively, so the result is only ever used as a lookup key.
func NormalizeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
