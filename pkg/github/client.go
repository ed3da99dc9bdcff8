package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const userAgent = "labelexim"

var _ LabelGateway = (*Client)(nil)

// Client implements the LabelGateway interface using the GitHub REST API
type Client struct {
	client        *github.Client
	logger        *slog.Logger
	authenticated bool
}

// NewClient creates a new GitHub API client with the provided token.
// An empty token yields an anonymous client, which can still read public labels.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)
	gh.UserAgent = userAgent

	return &Client{
		client:        gh,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		authenticated: token != "",
	}
}

// SetBaseURL points the client at a different API root, such as a GitHub
// Enterprise server or a test server.
func (c *Client) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL %q: scheme and host are required", rawURL)
	}
	c.client.BaseURL = u
	return nil
}

// SetLogger sets the logger used for request-level debug output
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// ValidateToken checks the token by fetching the authenticated user
func (c *Client) ValidateToken(ctx context.Context) (*TokenInfo, error) {
	if !c.authenticated {
		return nil, NewGitHubError(ErrorTypeAuth, "GitHub token cannot be empty", nil)
	}

	user, resp, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, WrapGitHubError(err, "user")
	}

	scopes := []string{}
	if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
		scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
	}

	return &TokenInfo{
		User:   user.GetLogin(),
		Scopes: scopes,
	}, nil
}

// ListLabels lists all labels of a repository
func (c *Client) ListLabels(ctx context.Context, ref RepoRef) ([]Label, error) {
	opts := &github.ListOptions{PerPage: 100}

	var allLabels []Label
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, ref.Owner, ref.Repo, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("repository %s", ref))
		}

		for _, l := range labels {
			label, err := convertGitHubLabel(l)
			if err != nil {
				return nil, fmt.Errorf("unexpected label data from %s: %w", ref, err)
			}
			allLabels = append(allLabels, label)
		}

		c.logger.Debug("listed labels", "repo", ref.String(), "page", opts.Page, "count", len(labels))

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allLabels, nil
}

// CreateLabel creates a new label in a repository
func (c *Client) CreateLabel(ctx context.Context, ref RepoRef, label Label) error {
	ghLabel := &github.Label{
		Name:        github.String(label.Name),
		Description: github.String(label.Description),
		Color:       github.String(label.Color.String()),
	}

	if _, _, err := c.client.Issues.CreateLabel(ctx, ref.Owner, ref.Repo, ghLabel); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %q in %s", label.Name, ref))
	}
	return nil
}

// UpdateLabel edits the label currently named currentName. The name in the
// path is sent exactly as given, while update.NewName may rename the label.
func (c *Client) UpdateLabel(ctx context.Context, ref RepoRef, currentName string, update LabelUpdate) error {
	req, err := c.client.NewRequest(http.MethodPatch, labelPath(ref, currentName), update)
	if err != nil {
		return fmt.Errorf("failed to build update request for label %q: %w", currentName, err)
	}

	if _, err := c.client.Do(ctx, req, nil); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %q in %s", currentName, ref))
	}
	return nil
}

// DeleteLabel removes a label from a repository
func (c *Client) DeleteLabel(ctx context.Context, ref RepoRef, name string) error {
	req, err := c.client.NewRequest(http.MethodDelete, labelPath(ref, name), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request for label %q: %w", name, err)
	}

	if _, err := c.client.Do(ctx, req, nil); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %q in %s", name, ref))
	}
	return nil
}

// labelPath builds the API path of a single label. Label names may contain
// spaces, slashes and other characters that must be escaped.
func labelPath(ref RepoRef, name string) string {
	return fmt.Sprintf("repos/%s/%s/labels/%s",
		url.PathEscape(ref.Owner), url.PathEscape(ref.Repo), url.PathEscape(name))
}

// convertGitHubLabel converts a GitHub API label to our internal type
func convertGitHubLabel(l *github.Label) (Label, error) {
	color, err := ParseColor(l.GetColor())
	if err != nil {
		return Label{}, fmt.Errorf("label %q: %w", l.GetName(), err)
	}

	return Label{
		Name:        l.GetName(),
		Description: l.GetDescription(),
		Color:       color,
	}, nil
}
