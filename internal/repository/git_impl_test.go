package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (string, *git.Repository) {
	dir, err := os.MkdirTemp("", "git-test-*")
	require.NoError(t, err)
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	// Create initial commit
	wt, err := repo.Worktree()
	require.NoError(t, err)
	testFile := filepath.Join(dir, "test.txt")
	err = os.WriteFile(testFile, []byte("test content"), 0644)
	require.NoError(t, err)
	_, err = wt.Add("test.txt")
	require.NoError(t, err)
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	require.NoError(t, err)
	return dir, repo
}

func createLightweightTag(t *testing.T, repo *git.Repository, name string) {
	t.Helper()
	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag(name, head.Hash(), nil)
	require.NoError(t, err)
}

func TestNewGitRepository(t *testing.T) {
	t.Run("Should open existing repository", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		oldPwd, _ := os.Getwd()
		err := os.Chdir(dir)
		require.NoError(t, err)
		defer os.Chdir(oldPwd)
		gitRepo, err := NewGitRepository()
		assert.NoError(t, err)
		assert.NotNil(t, gitRepo)
	})
	t.Run("Should find repository from a subdirectory", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		sub := filepath.Join(dir, "nested", "deep")
		require.NoError(t, os.MkdirAll(sub, 0755))
		oldPwd, _ := os.Getwd()
		err := os.Chdir(sub)
		require.NoError(t, err)
		defer os.Chdir(oldPwd)
		gitRepo, err := NewGitRepository()
		assert.NoError(t, err)
		assert.NotNil(t, gitRepo)
	})
	t.Run("Should return error for non-git directory", func(t *testing.T) {
		dir, err := os.MkdirTemp("", "non-git-*")
		require.NoError(t, err)
		defer os.RemoveAll(dir)
		oldPwd, _ := os.Getwd()
		err = os.Chdir(dir)
		require.NoError(t, err)
		defer os.Chdir(oldPwd)
		gitRepo, err := NewGitRepository()
		assert.Error(t, err)
		assert.Nil(t, gitRepo)
		assert.Contains(t, err.Error(), "no git repository found")
	})
}

func TestGitRepository_CurrentBranch(t *testing.T) {
	t.Run("Should return the checked-out branch", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		branch, err := gitRepo.CurrentBranch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "master", branch)
	})
}

func TestGitRepository_ListTags(t *testing.T) {
	t.Run("Should return all tags without a glob", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		createLightweightTag(t, repo, "v1.0.0")
		createLightweightTag(t, repo, "v2.0.0-beta.1")
		createLightweightTag(t, repo, "backup-2024")
		gitRepo := &gitRepository{repo: repo}
		tags, err := gitRepo.ListTags(context.Background(), "")
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"v1.0.0", "v2.0.0-beta.1", "backup-2024"}, tags)
	})
	t.Run("Should narrow tags by glob", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		createLightweightTag(t, repo, "v1.0.0")
		createLightweightTag(t, repo, "v2.0.0-beta.1")
		createLightweightTag(t, repo, "backup-2024")
		gitRepo := &gitRepository{repo: repo}
		tags, err := gitRepo.ListTags(context.Background(), "v*")
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"v1.0.0", "v2.0.0-beta.1"}, tags)
	})
	t.Run("Should return empty slice when no tags exist", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		tags, err := gitRepo.ListTags(context.Background(), "")
		assert.NoError(t, err)
		assert.Empty(t, tags)
	})
	t.Run("Should return error for malformed glob", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		createLightweightTag(t, repo, "v1.0.0")
		gitRepo := &gitRepository{repo: repo}
		_, err := gitRepo.ListTags(context.Background(), "v[")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tag glob")
	})
}
