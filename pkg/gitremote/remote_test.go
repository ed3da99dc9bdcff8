package gitremote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, remotes map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	for name, url := range remotes {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: name,
			URLs: []string{url},
		})
		require.NoError(t, err)
	}

	return dir
}

func TestURL(t *testing.T) {
	dir := initRepo(t, map[string]string{
		"origin":   "git@github.com:octocat/hello-world.git",
		"upstream": "https://github.com/upstream-org/hello-world",
	})

	url, err := URL(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:octocat/hello-world.git", url)

	url, err = URL(dir, "upstream")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/upstream-org/hello-world", url)
}

func TestURLFromSubdirectory(t *testing.T) {
	dir := initRepo(t, map[string]string{"origin": "https://github.com/octocat/hello-world.git"})

	sub := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	url, err := URL(sub, DefaultRemote)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/octocat/hello-world.git", url)
}

func TestURLErrors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := URL(t.TempDir(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
	})

	t.Run("missing remote", func(t *testing.T) {
		dir := initRepo(t, nil)

		_, err := URL(dir, "origin")
		require.Error(t, err)
		assert.ErrorIs(t, err, git.ErrRemoteNotFound)
	})
}
