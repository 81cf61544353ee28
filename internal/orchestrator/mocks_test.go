package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) ListTags(ctx context.Context, glob string) ([]string, error) {
	args := m.Called(ctx, glob)
	var tags []string
	if v := args.Get(0); v != nil {
		tags = v.([]string)
	}
	return tags, args.Error(1)
}

// Mock for CIOutputRepository
type mockCIOutputRepository struct{ mock.Mock }

func (m *mockCIOutputRepository) WriteOutput(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
