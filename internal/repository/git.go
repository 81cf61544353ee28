package repository

import "context"

// GitRepository defines the read-only git operations the tool needs.

type GitRepository interface {
	CurrentBranch(ctx context.Context) (string, error)
	ListTags(ctx context.Context, glob string) ([]string, error)
}
