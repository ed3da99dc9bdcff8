package github

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// ownerPattern requires an alphanumeric first and last character around at
	// least one alphanumeric or hyphen, so owners shorter than three characters
	// never match.
	ownerPattern = `(?P<owner>[[:alnum:]][[:alnum:]\-]+[[:alnum:]])`
	// repoPattern is lazy so an optional trailing .git is left to the suffix group.
	repoPattern = `(?P<repo>[[:alnum:]._\-]+?)`
)

var repoRefPatterns = []*regexp.Regexp{
	// https://github.com/owner/repo(.git)
	regexp.MustCompile(`^https://github\.com/` + ownerPattern + `/` + repoPattern + `(?:\.git)?$`),
	// git@github.com:owner/repo(.git)
	regexp.MustCompile(`^git@github\.com:` + ownerPattern + `/` + repoPattern + `(?:\.git)?$`),
	// owner/repo
	regexp.MustCompile(`^` + ownerPattern + `/` + repoPattern + `$`),
}

// RepoRefError reports input that matches none of the accepted repository forms
type RepoRefError struct {
	Input string
}

// Error implements the error interface
func (e *RepoRefError) Error() string {
	return fmt.Sprintf("failed to parse repository reference %q: expected https://github.com/owner/repo, git@github.com:owner/repo or owner/repo", e.Input)
}

// Is reports ErrInvalidRepoRef as a match so callers can use errors.Is
func (e *RepoRefError) Is(target error) bool {
	return target == ErrInvalidRepoRef
}

// ParseRepoRef extracts owner and repository name from an HTTPS URL, an SSH
// remote or an owner/repo shorthand. The first matching form wins.
func ParseRepoRef(input string) (RepoRef, error) {
	s := strings.TrimSpace(input)

	for _, re := range repoRefPatterns {
		match := re.FindStringSubmatch(s)
		if match == nil {
			continue
		}
		return RepoRef{
			Owner: match[re.SubexpIndex("owner")],
			Repo:  match[re.SubexpIndex("repo")],
		}, nil
	}

	return RepoRef{}, &RepoRefError{Input: input}
}
