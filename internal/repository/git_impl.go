package repository

import (
	"context"
	"fmt"
	"path"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository containing the working directory,
// searching parent directories the way git itself does.
func NewGitRepository() (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("no git repository found in working directory or parent directories: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// ListTags returns the names of the repository's tags, optionally narrowed
// by a shell glob. Only the local tag namespace is read; no fetch happens.
func (r *gitRepository) ListTags(_ context.Context, glob string) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if glob != "" {
			matched, matchErr := path.Match(glob, name)
			if matchErr != nil {
				return fmt.Errorf("invalid tag glob %q: %w", glob, matchErr)
			}
			if !matched {
				return nil
			}
		}
		tags = append(tags, name)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}
