package cmd

import (
	"github.com/compozy/latest-tag/internal/config"
	"github.com/compozy/latest-tag/internal/domain"
	"github.com/compozy/latest-tag/internal/logger"
	"github.com/compozy/latest-tag/internal/orchestrator"
	"github.com/compozy/latest-tag/internal/repository"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg  *config.Config
	log  *zap.Logger
	orch *orchestrator.LatestTagOrchestrator
}

// newContainer creates a new container with all the dependencies.
func newContainer(verbose bool) (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(verbose || cfg.Verbose)
	if err != nil {
		return nil, err
	}

	gitRepo, err := repository.NewGitRepository()
	if err != nil {
		return nil, err
	}

	// The output repository is optional - the dry-run path works without it
	var outputRepo repository.CIOutputRepository
	if cfg.OutputPath != "" {
		outputRepo = repository.NewGithubOutputRepository(afero.NewOsFs(), cfg.OutputPath)
	}

	orch := orchestrator.NewLatestTagOrchestrator(gitRepo, outputRepo, log)

	return &container{
		cfg:  cfg,
		log:  log,
		orch: orch,
	}, nil
}

// InitCommands initializes the root command with its flags and dependencies
func InitCommands() error {
	var (
		releaseBranch    string
		tagPrefix        string
		prereleaseSuffix string
		matchMode        string
		dryRun           bool
		verbose          bool
	)
	rootCmd.Flags().StringVarP(&releaseBranch, "release-branch", "r", "",
		"Branch that receives stable releases (required unless configured)")
	rootCmd.Flags().StringVarP(&tagPrefix, "tag-prefix", "t", "",
		"Prefix shared by version tags (e.g. \"v\")")
	rootCmd.Flags().StringVar(&prereleaseSuffix, "prerelease-suffix", domain.DefaultPrereleaseSuffix,
		"Suffix label of prerelease tags (e.g. \"beta\")")
	rootCmd.Flags().StringVar(&matchMode, "match-mode", string(domain.MatchModeGlob),
		"Tag matching mode: glob or regex")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Select the tag without writing the CI output file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		// The container opens the git repository, so build it lazily here
		// instead of before command dispatch.
		c, err := newContainer(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = c.log.Sync() }()

		runCfg := orchestrator.LatestTagConfig{
			ReleaseBranch:    c.cfg.ReleaseBranch,
			TagPrefix:        c.cfg.TagPrefix,
			PrereleaseSuffix: c.cfg.PrereleaseSuffix,
			MatchMode:        domain.MatchMode(c.cfg.MatchMode),
			DryRun:           dryRun,
		}
		// Flags override config file and environment values
		if cmd.Flags().Changed("release-branch") {
			runCfg.ReleaseBranch = releaseBranch
		}
		if cmd.Flags().Changed("tag-prefix") {
			runCfg.TagPrefix = tagPrefix
		}
		if cmd.Flags().Changed("prerelease-suffix") {
			runCfg.PrereleaseSuffix = prereleaseSuffix
		}
		if cmd.Flags().Changed("match-mode") {
			runCfg.MatchMode = domain.MatchMode(matchMode)
		}

		_, err = c.orch.Execute(cmd.Context(), runCfg)
		return err
	}

	rootCmd.AddCommand(newVersionCmd())
	return nil
}
