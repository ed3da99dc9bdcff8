// Package github provides GitHub issue label synchronization for labelexim.
// It exports a repository's labels to a file and imports a label file back
// into a repository, reconciling by case-insensitive name.
//
// The package includes:
// - LabelGateway interface for the GitHub labels API, and a go-github Client
// - Plan and Reconciler for the merge and override policies
// - ParseRepoRef for HTTPS, SSH and owner/repo repository references
// - Label file encoding in JSON, YAML and TOML with a strict hex color codec
package github
