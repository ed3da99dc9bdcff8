package github

import (
	"fmt"
	"os"
	"strings"

	"labelexim/pkg/config"
)

// TokenEnvVar overrides the token stored in the config file
const TokenEnvVar = "GITHUB_TOKEN"

// ErrNoToken is returned by RequireToken when no token is configured
var ErrNoToken = fmt.Errorf("no GitHub token found: run 'labelexim login <TOKEN>' or set the %s environment variable", TokenEnvVar)

// GetToken retrieves the GitHub token from the environment or the config file.
// It returns an empty string when neither is set.
func GetToken(cfg *config.Config) string {
	// First, check environment variable
	if token := os.Getenv(TokenEnvVar); token != "" {
		return strings.TrimSpace(token)
	}

	// Then check config file
	if cfg != nil {
		return strings.TrimSpace(cfg.Token)
	}

	return ""
}

// RequireToken is like GetToken but fails when no token is available
func RequireToken(cfg *config.Config) (string, error) {
	token := GetToken(cfg)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. Please set up authentication using one of the following methods:

1. Log in once and store the token in the config file:
   labelexim login <personal_access_token>

2. Environment Variable (Recommended for CI/CD):
   export GITHUB_TOKEN="your_personal_access_token"

To create a personal access token:
1. Go to GitHub Settings > Developer settings > Personal access tokens
2. Click "Generate new token (classic)"
3. Select the following scopes:
   - public_repo (for public repositories) or repo (for private repositories)
4. Copy the generated token and use it with one of the methods above`
}
