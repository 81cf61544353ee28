package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/latest-tag/internal/domain"
	"github.com/compozy/latest-tag/internal/repository"
	"github.com/compozy/latest-tag/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutputKey is the name under which the selected tag is published to the CI
// output file.
const OutputKey = "latest_tag"

// LatestTagConfig contains configuration for a selection run.
type LatestTagConfig struct {
	ReleaseBranch    string
	TagPrefix        string
	PrereleaseSuffix string
	MatchMode        domain.MatchMode
	DryRun           bool
}

// LatestTagOrchestrator wires branch resolution, tag listing, selection and
// the CI output write.
type LatestTagOrchestrator struct {
	gitRepo    repository.GitRepository
	outputRepo repository.CIOutputRepository
	logger     *zap.Logger
}

// NewLatestTagOrchestrator creates a new orchestrator. outputRepo may be nil
// when no output path is configured; Execute then requires DryRun.
func NewLatestTagOrchestrator(
	gitRepo repository.GitRepository,
	outputRepo repository.CIOutputRepository,
	logger *zap.Logger,
) *LatestTagOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LatestTagOrchestrator{
		gitRepo:    gitRepo,
		outputRepo: outputRepo,
		logger:     logger,
	}
}

// Execute runs the complete selection workflow and returns the selected tag.
func (o *LatestTagOrchestrator) Execute(ctx context.Context, cfg LatestTagConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()
	if cfg.ReleaseBranch == "" {
		return "", &domain.ConfigurationError{Field: "release_branch", Reason: "cannot be empty"}
	}
	if !cfg.DryRun && o.outputRepo == nil {
		return "", &domain.ConfigurationError{
			Field:  "output_path",
			Reason: "is not set; export GITHUB_OUTPUT or run with --dry-run",
		}
	}
	log := o.logger.With(zap.String("run_id", uuid.NewString()))

	modeUC := &usecase.ResolveReleaseModeUseCase{GitRepo: o.gitRepo, Logger: log}
	_, prerelease, err := modeUC.Execute(ctx, cfg.ReleaseBranch)
	if err != nil {
		return "", fmt.Errorf("failed to resolve release mode: %w", err)
	}

	criteria := domain.SelectionCriteria{
		TagPrefix:        cfg.TagPrefix,
		PrereleaseSuffix: cfg.PrereleaseSuffix,
		Prerelease:       prerelease,
		Mode:             cfg.MatchMode,
	}
	if criteria.Mode == "" {
		criteria.Mode = domain.MatchModeGlob
	}
	if err := criteria.Validate(); err != nil {
		return "", err
	}

	// Regex mode validates every tag itself, so it sees the full namespace.
	glob := ""
	if criteria.Mode == domain.MatchModeGlob {
		glob = criteria.GlobPattern()
	}
	tags, err := o.gitRepo.ListTags(ctx, glob)
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}
	log.Debug("collected candidate tags", zap.Int("count", len(tags)), zap.String("glob", glob))

	selectUC := &usecase.SelectLatestTagUseCase{Logger: log}
	latest, err := selectUC.Execute(ctx, tags, criteria)
	if err != nil {
		return "", err
	}
	log.Info("latest tag found", zap.String("tag", latest))

	if cfg.DryRun {
		log.Info("dry run, skipping CI output write")
		return latest, nil
	}
	if err := o.outputRepo.WriteOutput(ctx, OutputKey, latest); err != nil {
		return "", fmt.Errorf("failed to write CI output: %w", err)
	}
	return latest, nil
}
