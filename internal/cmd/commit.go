package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Dionizioaf/commit-ai-agent/internal/app"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ai"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/git"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/history"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/security"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// CommitFlags holds the flags for the commit command.
type CommitFlags struct {
	Yes  bool
	Date string
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	flags := &CommitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message from staged changes and commit",
		Long: `Generate a Conventional Commits message from your staged changes,
show it, and commit after confirmation.

Examples:
  commit-ai commit                  # Interactive commit
  commit-ai commit --yes            # Commit without asking
  commit-ai commit -d "2024-01-15"  # Commit with an explicit date`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation and commit immediately")
	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "Date passed to git commit --date")

	return cmd
}

// runCommit executes the commit workflow. It is shared by the bare root
// invocation and the commit subcommand.
func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	service, opts, err := buildService(cmd, serviceOptions{
		yes:  flags.Yes,
		date: flags.Date,
	})
	if err != nil {
		return err
	}

	return service.GenerateAndCommit(ctx, opts)
}

// serviceOptions carries the per-invocation knobs into buildService.
type serviceOptions struct {
	yes       bool
	date      string
	printOnly bool
}

// buildService wires configuration, git, provider, UI and history into a
// ready CommitService. Flag overrides take priority over env and file.
func buildService(cmd *cobra.Command, sopts serviceOptions) (*app.CommitService, *app.CommitOptions, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	providerOverride, _ := cmd.Flags().GetString("provider")
	modelOverride, _ := cmd.Flags().GetString("model")

	apperrors.SetVerbose(verbose)

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError(err.Error())
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}

	// First run with a terminal attached: walk through the setup wizard.
	// Non-interactive runs fall through and fail on the missing credential.
	if !cfgMgr.ConfigExists() && !sopts.yes && !sopts.printOnly && isInteractive() {
		if err := ui.RunInteractiveSetup(cfgMgr); err != nil {
			return nil, nil, fmt.Errorf("setup failed: %w", err)
		}
	}

	if providerOverride != "" {
		cfgMgr.SetOverride("ai_provider", providerOverride)
		apperrors.Debug("Provider overridden via flag: %s", providerOverride)
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError(err.Error())
	}

	if cfg.APIKey != "" {
		if err := security.ValidateAPIKeyFormat(cfg.Provider, cfg.APIKey); err != nil {
			return nil, nil, apperrors.NewConfigurationError(err.Error()).
				WithSuggestion("Check the api_key value with 'commit-ai config'")
		}
	}

	if verbose {
		apperrors.Info("Using provider: %s", cfg.Provider)
		if cfg.Model != "" {
			apperrors.Info("Using model: %s", cfg.Model)
		}
		if cfg.APIKey != "" {
			apperrors.Info("API key: %s", security.MaskAPIKey(cfg.APIKey))
		}
	}

	gitClient, err := git.NewClient()
	if err != nil {
		return nil, nil, err
	}

	aiProvider, err := ai.NewProvider(&ai.ProviderConfig{
		Name:    cfg.Provider,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	apperrors.Debug("AI provider created: %s", aiProvider.Name())

	var uiMgr ui.Manager
	if sopts.yes || sopts.printOnly {
		uiMgr = ui.NewNonInteractiveManager()
	} else {
		uiMgr = ui.NewDefaultManager(true)
	}

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	service := app.NewCommitService(gitClient, aiProvider, uiMgr, historyMgr, cfg)
	opts := &app.CommitOptions{
		Model:     modelOverride,
		Yes:       sopts.yes,
		Date:      sopts.date,
		PrintOnly: sopts.printOnly,
	}
	return service, opts, nil
}

// isInteractive reports whether stdin is attached to a terminal.
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
