package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/latest-tag/internal/repository"
	"go.uber.org/zap"
)

// ResolveReleaseModeUseCase decides whether a run selects prerelease tags by
// comparing the checked-out branch against the configured release branch.
type ResolveReleaseModeUseCase struct {
	GitRepo repository.GitRepository
	Logger  *zap.Logger
}

// Execute returns the current branch name and whether prerelease tags should
// be included in the selection.
func (uc *ResolveReleaseModeUseCase) Execute(ctx context.Context, releaseBranch string) (string, bool, error) {
	branch, err := uc.GitRepo.CurrentBranch(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to get current branch: %w", err)
	}
	prerelease := branch != releaseBranch
	log := uc.logger().With(
		zap.String("branch", branch),
		zap.String("release_branch", releaseBranch),
	)
	if prerelease {
		log.Info("current branch is not the release branch, including prerelease tags")
	} else {
		log.Info("current branch is the release branch, excluding prerelease tags")
	}
	return branch, prerelease, nil
}

func (uc *ResolveReleaseModeUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
