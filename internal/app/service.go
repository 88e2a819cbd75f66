// Package app contains the application layer that sequences the commit
// workflow: diff, generate, confirm, commit.
package app

import (
	"context"
	"fmt"

	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ai"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/git"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/history"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/message"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ui"
)

// diffPreviewLength caps the diff excerpt logged in verbose mode.
const diffPreviewLength = 500

// CommitOptions contains the per-invocation options for the workflow.
type CommitOptions struct {
	// Model overrides the configured model for this run.
	Model string

	// Yes skips the confirmation prompt.
	Yes bool

	// Date is passed through to git commit --date. Overrides the
	// configured default date.
	Date string

	// PrintOnly generates and prints the message without committing.
	PrintOnly bool
}

// CommitService orchestrates the commit message generation workflow.
type CommitService struct {
	gitClient  git.Client
	provider   ai.Provider
	uiManager  ui.Manager
	historyMgr history.Manager
	config     *config.Config
}

// NewCommitService creates a new CommitService with the given
// dependencies.
func NewCommitService(
	gitClient git.Client,
	provider ai.Provider,
	uiManager ui.Manager,
	historyMgr history.Manager,
	cfg *config.Config,
) *CommitService {
	return &CommitService{
		gitClient:  gitClient,
		provider:   provider,
		uiManager:  uiManager,
		historyMgr: historyMgr,
		config:     cfg,
	}
}

// GenerateAndCommit runs the complete workflow: verify the repository,
// check staged changes, obtain the diff, generate a message, confirm,
// commit, record history.
// Every step is fail-fast; a declined confirmation is not an error.
func (s *CommitService) GenerateAndCommit(ctx context.Context, opts *CommitOptions) error {
	if opts == nil {
		opts = &CommitOptions{}
	}

	inRepo, err := s.gitClient.IsRepository(ctx)
	if err != nil {
		return err
	}
	if !inRepo {
		appErr := apperrors.New(apperrors.ErrDiffUnavailable, "not a git repository")
		return appErr.WithSuggestion("Run commit-ai inside a git repository")
	}

	hasChanges, err := s.gitClient.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !hasChanges {
		appErr := apperrors.New(apperrors.ErrDiffUnavailable, "no staged changes found")
		return appErr.WithSuggestion("Stage your changes with 'git add' first")
	}

	diff, err := s.gitClient.StagedDiff(ctx)
	if err != nil {
		return err
	}

	apperrors.Debug("using provider %s", s.provider.Name())
	if apperrors.IsVerbose() {
		preview := diff
		if len(preview) > diffPreviewLength {
			preview = preview[:diffPreviewLength] + "..."
		}
		apperrors.Debug("staged diff preview:\n%s", preview)
	}

	response, err := s.generate(ctx, diff, opts.Model)
	if err != nil {
		return err
	}

	s.uiManager.ShowMessage(response.Message)
	if !message.IsValid(response.Message) {
		s.uiManager.ShowInfo("Note: the generated message does not follow the conventional commit format")
	}

	if opts.PrintOnly {
		s.saveHistory(response, false)
		return nil
	}

	accepted := true
	if !opts.Yes {
		accepted, err = s.uiManager.Confirm("Commit with this message?")
		if err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
	}

	if !accepted {
		s.uiManager.ShowInfo("Commit cancelled")
		s.saveHistory(response, false)
		return nil
	}

	date := opts.Date
	if date == "" && s.config != nil {
		date = s.config.DefaultDate
	}

	if err := s.gitClient.Commit(ctx, response.Message, date); err != nil {
		s.saveHistory(response, false)
		return err
	}

	s.uiManager.ShowSuccess("Changes committed")
	s.saveHistory(response, true)
	return nil
}

// generate calls the provider with a spinner while the request blocks.
// The local-daemon provider always uses its own configured model, so a
// caller-supplied override is dropped for it.
func (s *CommitService) generate(ctx context.Context, diff, modelOverride string) (*ai.GenerateResponse, error) {
	if s.provider.Name() == ai.ProviderNameOllama {
		modelOverride = ""
	}

	spinner := s.uiManager.ShowSpinner("Generating commit message...")
	spinner.Start()
	defer spinner.Stop()

	return s.provider.GenerateCommitMessage(ctx, &ai.GenerateRequest{
		Diff:  diff,
		Model: modelOverride,
	})
}

// saveHistory appends a history entry. History failures never break the
// commit flow.
func (s *CommitService) saveHistory(response *ai.GenerateResponse, committed bool) {
	if s.historyMgr == nil || s.config == nil || !s.config.History.Enabled {
		return
	}

	entry := &history.Entry{
		Message:   response.Message,
		Provider:  s.provider.Name(),
		Model:     response.Model,
		Committed: committed,
	}
	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("failed to save history entry: %v", err)
	}
}
