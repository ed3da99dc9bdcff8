// Package gitremote reads remote URLs from the git repository enclosing a directory.
package gitremote

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted when none is named
const DefaultRemote = "origin"

// ErrNoRemoteURL is returned when the remote exists but has no URL configured
var ErrNoRemoteURL = errors.New("remote has no URL")

// URL returns the first URL of the named remote of the git repository that
// contains dir. Parent directories are searched for the .git directory.
func URL(dir, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%s is not inside a git repository: %w", dir, err)
		}
		return "", fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	r, err := repo.Remote(remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("git remote %q not found: %w", remote, err)
		}
		return "", fmt.Errorf("failed to read git remote %q: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", fmt.Errorf("git remote %q: %w", remote, ErrNoRemoteURL)
	}

	return urls[0], nil
}
