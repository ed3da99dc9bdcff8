package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is a request seen by the fake GitHub server
type recordedRequest struct {
	Method  string
	Path    string
	RawPath string
	Auth    string
	Body    map[string]interface{}
}

type fakeResponse struct {
	status int
	body   interface{}
	header map[string]string
}

// mockGitHubServer creates a test HTTP server that mocks GitHub API responses.
// Responses are keyed by "METHOD escaped-path"; unknown routes return 404.
func mockGitHubServer(t *testing.T, responses map[string]fakeResponse) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			RawPath: r.URL.EscapedPath(),
			Auth:    r.Header.Get("Authorization"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")

		key := fmt.Sprintf("%s %s", r.Method, r.URL.EscapedPath())
		resp, ok := responses[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			return
		}

		for k, v := range resp.header {
			w.Header().Set(k, v)
		}
		status := resp.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if resp.body != nil {
			_ = json.NewEncoder(w).Encode(resp.body)
		}
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

// createTestClient creates a GitHub client configured to use the test server
func createTestClient(t *testing.T, server *httptest.Server, token string) *Client {
	t.Helper()
	client := NewClient(token)
	require.NoError(t, client.SetBaseURL(server.URL))
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-token")

	require.NotNil(t, client)
	require.NotNil(t, client.client)
	assert.True(t, client.authenticated)
	assert.Equal(t, "https://api.github.com/", client.client.BaseURL.String())

	anonymous := NewClient("")
	assert.False(t, anonymous.authenticated)
}

func TestSetBaseURL(t *testing.T) {
	client := NewClient("")

	require.NoError(t, client.SetBaseURL("https://ghe.example.com/api/v3"))
	assert.Equal(t, "https://ghe.example.com/api/v3/", client.client.BaseURL.String())

	assert.Error(t, client.SetBaseURL("not a url"))
	assert.Error(t, client.SetBaseURL("://missing-scheme"))
}

func TestListLabels(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"GET /repos/octocat/hello-world/labels": {body: []map[string]interface{}{
			{"id": 1, "name": "bug", "description": "Something isn't working", "color": "d73a4a"},
			{"id": 2, "name": "Question", "description": nil, "color": "D876E3"},
		}},
	})
	client := createTestClient(t, server, "test-token")

	labels, err := client.ListLabels(context.Background(), RepoRef{Owner: "octocat", Repo: "hello-world"})

	require.NoError(t, err)
	assert.Equal(t, []Label{
		{Name: "bug", Description: "Something isn't working", Color: MustParseColor("d73a4a")},
		{Name: "Question", Description: "", Color: MustParseColor("d876e3")},
	}, labels)

	require.Len(t, *requests, 1)
	assert.Equal(t, "Bearer test-token", (*requests)[0].Auth)
}

func TestListLabelsFollowsPages(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "second", "color": "222222"}})
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/o/r/labels?page=2&per_page=100>; rel="next"`, server.URL))
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "first", "color": "111111"}})
	}))
	defer server.Close()

	client := createTestClient(t, server, "")
	labels, err := client.ListLabels(context.Background(), RepoRef{Owner: "o", Repo: "r"})

	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "first", labels[0].Name)
	assert.Equal(t, "second", labels[1].Name)
}

func TestListLabelsBadColor(t *testing.T) {
	server, _ := mockGitHubServer(t, map[string]fakeResponse{
		"GET /repos/o/r/labels": {body: []map[string]string{{"name": "weird", "color": "#fff"}}},
	})
	client := createTestClient(t, server, "")

	_, err := client.ListLabels(context.Background(), RepoRef{Owner: "o", Repo: "r"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
}

func TestListLabelsAnonymous(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"GET /repos/o/r/labels": {body: []interface{}{}},
	})
	client := createTestClient(t, server, "")

	labels, err := client.ListLabels(context.Background(), RepoRef{Owner: "o", Repo: "r"})

	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Empty(t, (*requests)[0].Auth)
}

func TestListLabelsNotFound(t *testing.T) {
	server, _ := mockGitHubServer(t, nil)
	client := createTestClient(t, server, "test-token")

	_, err := client.ListLabels(context.Background(), RepoRef{Owner: "o", Repo: "missing"})

	require.Error(t, err)
	var ghErr *GitHubError
	require.True(t, errors.As(err, &ghErr))
	assert.Equal(t, ErrorTypeNotFound, ghErr.Type)
	assert.Equal(t, http.StatusNotFound, ghErr.StatusCode)
	assert.Contains(t, ghErr.Body, "Not Found")
	assert.Equal(t, "repository o/missing", ghErr.Resource)
}

func TestCreateLabel(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"POST /repos/o/r/labels": {status: http.StatusCreated, body: map[string]string{"name": "bug", "color": "d73a4a"}},
	})
	client := createTestClient(t, server, "test-token")

	err := client.CreateLabel(context.Background(), RepoRef{Owner: "o", Repo: "r"},
		Label{Name: "bug", Description: "Something isn't working", Color: MustParseColor("d73a4a")})

	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, map[string]interface{}{
		"name":        "bug",
		"description": "Something isn't working",
		"color":       "d73a4a",
	}, (*requests)[0].Body)
}

func TestCreateLabelConflict(t *testing.T) {
	server, _ := mockGitHubServer(t, map[string]fakeResponse{
		"POST /repos/o/r/labels": {status: http.StatusUnprocessableEntity, body: map[string]interface{}{
			"message": "Validation Failed",
			"errors":  []map[string]string{{"resource": "Label", "code": "already_exists", "field": "name"}},
		}},
	})
	client := createTestClient(t, server, "test-token")

	err := client.CreateLabel(context.Background(), RepoRef{Owner: "o", Repo: "r"}, Label{Name: "bug"})

	require.Error(t, err)
	var ghErr *GitHubError
	require.True(t, errors.As(err, &ghErr))
	assert.Equal(t, ErrorTypeConflict, ghErr.Type)
	assert.Equal(t, http.StatusUnprocessableEntity, ghErr.StatusCode)
	assert.Contains(t, ghErr.Body, "already_exists")
}

func TestUpdateLabel(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"PATCH /repos/o/r/labels/Bug": {body: map[string]string{"name": "bug"}},
	})
	client := createTestClient(t, server, "test-token")

	err := client.UpdateLabel(context.Background(), RepoRef{Owner: "o", Repo: "r"}, "Bug",
		RenameTo(Label{Name: "bug", Description: "issue", Color: MustParseColor("00ff00")}))

	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, map[string]interface{}{
		"new_name":    "bug",
		"description": "issue",
		"color":       "00ff00",
	}, (*requests)[0].Body)
}

func TestUpdateLabelWithoutRename(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"PATCH /repos/o/r/labels/bug": {body: map[string]string{"name": "bug"}},
	})
	client := createTestClient(t, server, "test-token")

	err := client.UpdateLabel(context.Background(), RepoRef{Owner: "o", Repo: "r"}, "bug",
		LabelUpdate{Description: "", Color: MustParseColor("ffffff")})

	require.NoError(t, err)
	body := (*requests)[0].Body
	assert.NotContains(t, body, "new_name")
	assert.Equal(t, "", body["description"])
	assert.Equal(t, "ffffff", body["color"])
}

func TestDeleteLabelEscapesName(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"DELETE /repos/o/r/labels/good%20first%20issue": {status: http.StatusNoContent},
		"DELETE /repos/o/r/labels/area%2Fapi":           {status: http.StatusNoContent},
	})
	client := createTestClient(t, server, "test-token")
	ref := RepoRef{Owner: "o", Repo: "r"}

	require.NoError(t, client.DeleteLabel(context.Background(), ref, "good first issue"))
	require.NoError(t, client.DeleteLabel(context.Background(), ref, "area/api"))

	require.Len(t, *requests, 2)
	assert.Equal(t, "/repos/o/r/labels/good first issue", (*requests)[0].Path)
	assert.Equal(t, "/repos/o/r/labels/area%2Fapi", (*requests)[1].RawPath)
}

func TestDeleteLabelNotFound(t *testing.T) {
	server, _ := mockGitHubServer(t, nil)
	client := createTestClient(t, server, "test-token")

	err := client.DeleteLabel(context.Background(), RepoRef{Owner: "o", Repo: "r"}, "gone")

	require.Error(t, err)
	var ghErr *GitHubError
	require.True(t, errors.As(err, &ghErr))
	assert.Equal(t, ErrorTypeNotFound, ghErr.Type)
	assert.Equal(t, "Label not found", ghErr.Message)
}

func TestValidateToken(t *testing.T) {
	server, requests := mockGitHubServer(t, map[string]fakeResponse{
		"GET /user": {
			body:   map[string]interface{}{"login": "octocat", "id": 1},
			header: map[string]string{"X-OAuth-Scopes": "repo, read:org"},
		},
	})
	client := createTestClient(t, server, "good-token")

	info, err := client.ValidateToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "octocat", info.User)
	assert.Equal(t, []string{"repo", "read:org"}, info.Scopes)
	assert.Equal(t, "Bearer good-token", (*requests)[0].Auth)
}

func TestValidateTokenUnauthorized(t *testing.T) {
	server, _ := mockGitHubServer(t, map[string]fakeResponse{
		"GET /user": {status: http.StatusUnauthorized, body: map[string]string{"message": "Bad credentials"}},
	})
	client := createTestClient(t, server, "bad-token")

	_, err := client.ValidateToken(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var ghErr *GitHubError
	require.True(t, errors.As(err, &ghErr))
	assert.Equal(t, http.StatusUnauthorized, ghErr.StatusCode)
	assert.Contains(t, ghErr.Message, "Invalid or expired GitHub token")
}

func TestValidateTokenEmpty(t *testing.T) {
	server, requests := mockGitHubServer(t, nil)
	client := createTestClient(t, server, "")

	_, err := client.ValidateToken(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, *requests, "no request is sent without a token")
}
