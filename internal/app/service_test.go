package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ai"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/history"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ui"
)

// mockGitClient implements git.Client for orchestrator tests.
type mockGitClient struct {
	isRepo        bool
	hasStaged     bool
	stagedCalled  bool
	diff          string
	diffErr       error
	commitErr     error
	commitCalled  bool
	commitMessage string
	commitDate    string
}

func (m *mockGitClient) IsRepository(ctx context.Context) (bool, error) {
	return m.isRepo, nil
}

func (m *mockGitClient) HasStagedChanges(ctx context.Context) (bool, error) {
	m.stagedCalled = true
	return m.hasStaged, nil
}

func (m *mockGitClient) StagedDiff(ctx context.Context) (string, error) {
	return m.diff, m.diffErr
}

func (m *mockGitClient) Commit(ctx context.Context, message, date string) error {
	m.commitCalled = true
	m.commitMessage = message
	m.commitDate = date
	return m.commitErr
}

// mockProvider implements ai.Provider.
type mockProvider struct {
	name     string
	response *ai.GenerateResponse
	err      error
	lastReq  *ai.GenerateRequest
}

func (m *mockProvider) GenerateCommitMessage(ctx context.Context, req *ai.GenerateRequest) (*ai.GenerateResponse, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) ValidateConfig(config ai.ProviderConfig) error {
	return nil
}

// mockUI implements ui.Manager with a scripted confirmation answer.
type mockUI struct {
	confirmAnswer bool
	confirmCalled bool
	shownMessage  string
	infoMessages  []string
}

func (m *mockUI) ShowMessage(message string) { m.shownMessage = message }

func (m *mockUI) Confirm(prompt string) (bool, error) {
	m.confirmCalled = true
	return m.confirmAnswer, nil
}

func (m *mockUI) ShowSpinner(text string) ui.Spinner { return &noopSpinner{} }
func (m *mockUI) ShowError(err error)                {}
func (m *mockUI) ShowSuccess(message string)         {}
func (m *mockUI) ShowInfo(message string)            { m.infoMessages = append(m.infoMessages, message) }

type noopSpinner struct{}

func (s *noopSpinner) Start()            {}
func (s *noopSpinner) Stop()             {}
func (s *noopSpinner) UpdateText(string) {}

// mockHistory implements history.Manager.
type mockHistory struct {
	saved []*history.Entry
}

func (m *mockHistory) Save(entry *history.Entry) error {
	m.saved = append(m.saved, entry)
	return nil
}

func (m *mockHistory) List(limit int) ([]*history.Entry, error) { return m.saved, nil }
func (m *mockHistory) Clear() error                             { m.saved = nil; return nil }

func testConfig() *config.Config {
	return &config.Config{
		Provider: "deepseek",
		History:  config.HistoryConfig{Enabled: true, MaxEntries: 100},
	}
}

func newTestService(gitClient *mockGitClient, provider *mockProvider, uiMgr *mockUI, hist *mockHistory) *CommitService {
	return NewCommitService(gitClient, provider, uiMgr, hist, testConfig())
}

func TestGenerateAndCommit_EndToEnd(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff --git a/f b/f\n+hello\n"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: add hello line", Model: "deepseek-chat"},
	}
	uiMgr := &mockUI{}
	hist := &mockHistory{}

	svc := newTestService(gitClient, provider, uiMgr, hist)
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if !gitClient.commitCalled {
		t.Fatal("commit was not invoked")
	}
	if gitClient.commitMessage != "feat: add hello line" {
		t.Errorf("commit message = %q, want %q", gitClient.commitMessage, "feat: add hello line")
	}
	if uiMgr.confirmCalled {
		t.Error("--yes should skip the confirmation prompt")
	}
	if len(hist.saved) != 1 || !hist.saved[0].Committed {
		t.Errorf("expected one committed history entry, got %+v", hist.saved)
	}
}

func TestGenerateAndCommit_NotARepository(t *testing.T) {
	gitClient := &mockGitClient{isRepo: false, hasStaged: true, diff: "diff"}
	provider := &mockProvider{name: "deepseek"}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err == nil {
		t.Fatal("expected an error outside a git repository")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrDiffUnavailable {
		t.Errorf("code = %v, want ErrDiffUnavailable", code)
	}
	if gitClient.stagedCalled {
		t.Error("staged-changes check should not run outside a repository")
	}
	if provider.lastReq != nil {
		t.Error("generation should never run outside a repository")
	}
}

func TestGenerateAndCommit_NoStagedChanges(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: false}
	provider := &mockProvider{name: "deepseek"}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err == nil {
		t.Fatal("expected an error with nothing staged")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrDiffUnavailable {
		t.Errorf("code = %v, want ErrDiffUnavailable", code)
	}
	if provider.lastReq != nil {
		t.Error("generation should never run without staged changes")
	}
}

func TestGenerateAndCommit_DeclineIsNotAnError(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}
	uiMgr := &mockUI{confirmAnswer: false}
	hist := &mockHistory{}

	svc := newTestService(gitClient, provider, uiMgr, hist)
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{})
	if err != nil {
		t.Fatalf("a declined confirmation must not be an error: %v", err)
	}

	if gitClient.commitCalled {
		t.Error("commit must not run after decline")
	}
	if len(hist.saved) != 1 || hist.saved[0].Committed {
		t.Errorf("expected one uncommitted history entry, got %+v", hist.saved)
	}
}

func TestGenerateAndCommit_OllamaDropsModelOverride(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "ollama",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "codellama"},
	}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true, Model: "mistral"})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if provider.lastReq.Model != "" {
		t.Errorf("request model = %q, want the override dropped for ollama", provider.lastReq.Model)
	}
}

func TestGenerateAndCommit_KeyedProviderKeepsModelOverride(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-coder"},
	}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true, Model: "deepseek-coder"})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if provider.lastReq.Model != "deepseek-coder" {
		t.Errorf("request model = %q, want %q", provider.lastReq.Model, "deepseek-coder")
	}
}

func TestGenerateAndCommit_DatePassthrough(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true, Date: "2024-01-15T10:00:00"})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if gitClient.commitDate != "2024-01-15T10:00:00" {
		t.Errorf("commit date = %q, want the flag value verbatim", gitClient.commitDate)
	}
}

func TestGenerateAndCommit_ConfiguredDefaultDate(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}

	cfg := testConfig()
	cfg.DefaultDate = "2023-06-01T00:00:00"
	svc := NewCommitService(gitClient, provider, &mockUI{}, &mockHistory{}, cfg)

	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if gitClient.commitDate != "2023-06-01T00:00:00" {
		t.Errorf("commit date = %q, want the configured default", gitClient.commitDate)
	}
}

func TestGenerateAndCommit_FlagDateWinsOverConfig(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}

	cfg := testConfig()
	cfg.DefaultDate = "2023-06-01T00:00:00"
	svc := NewCommitService(gitClient, provider, &mockUI{}, &mockHistory{}, cfg)

	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true, Date: "2024-02-02T00:00:00"})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if gitClient.commitDate != "2024-02-02T00:00:00" {
		t.Errorf("commit date = %q, want the flag to win", gitClient.commitDate)
	}
}

func TestGenerateAndCommit_NilConfig(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}
	hist := &mockHistory{}

	svc := NewCommitService(gitClient, provider, &mockUI{}, hist, nil)
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err != nil {
		t.Fatalf("GenerateAndCommit with nil config: %v", err)
	}

	if !gitClient.commitCalled {
		t.Fatal("commit was not invoked")
	}
	if gitClient.commitDate != "" {
		t.Errorf("commit date = %q, want empty without a configured default", gitClient.commitDate)
	}
	if len(hist.saved) != 0 {
		t.Errorf("history must be skipped without a config, got %+v", hist.saved)
	}
}

func TestGenerateAndCommit_PrintOnly(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}
	uiMgr := &mockUI{}
	hist := &mockHistory{}

	svc := newTestService(gitClient, provider, uiMgr, hist)
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{PrintOnly: true})
	if err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if gitClient.commitCalled {
		t.Error("print-only must not commit")
	}
	if uiMgr.confirmCalled {
		t.Error("print-only must not prompt")
	}
	if uiMgr.shownMessage != "feat: x" {
		t.Errorf("shown message = %q, want %q", uiMgr.shownMessage, "feat: x")
	}
	if len(hist.saved) != 1 || hist.saved[0].Committed {
		t.Errorf("expected one uncommitted history entry, got %+v", hist.saved)
	}
}

func TestGenerateAndCommit_ProviderErrorPropagates(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name: "deepseek",
		err:  apperrors.NewProviderConnectionError("deepseek", errors.New("dial tcp: refused")),
	}

	svc := newTestService(gitClient, provider, &mockUI{}, &mockHistory{})
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err == nil {
		t.Fatal("expected the provider error to propagate")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrProviderConnection {
		t.Errorf("code = %v, want ErrProviderConnection", code)
	}
	if gitClient.commitCalled {
		t.Error("commit must not run after a failed generation")
	}
}

func TestGenerateAndCommit_CommitErrorPropagates(t *testing.T) {
	gitClient := &mockGitClient{
		isRepo:    true,
		hasStaged: true,
		diff:      "diff",
		commitErr: errors.New("git commit failed"),
	}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}
	hist := &mockHistory{}

	svc := newTestService(gitClient, provider, &mockUI{}, hist)
	err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true})
	if err == nil {
		t.Fatal("expected the commit error to propagate")
	}
	if len(hist.saved) != 1 || hist.saved[0].Committed {
		t.Errorf("failed commit must record an uncommitted entry, got %+v", hist.saved)
	}
}

func TestGenerateAndCommit_HistoryDisabled(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "feat: x", Model: "deepseek-chat"},
	}
	hist := &mockHistory{}

	cfg := testConfig()
	cfg.History.Enabled = false
	svc := NewCommitService(gitClient, provider, &mockUI{}, hist, cfg)

	if err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true}); err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}
	if len(hist.saved) != 0 {
		t.Errorf("history disabled but %d entries saved", len(hist.saved))
	}
}

func TestGenerateAndCommit_NonConventionalMessageWarns(t *testing.T) {
	gitClient := &mockGitClient{isRepo: true, hasStaged: true, diff: "diff"}
	provider := &mockProvider{
		name:     "deepseek",
		response: &ai.GenerateResponse{Message: "added some stuff", Model: "deepseek-chat"},
	}
	uiMgr := &mockUI{}

	svc := newTestService(gitClient, provider, uiMgr, &mockHistory{})
	if err := svc.GenerateAndCommit(context.Background(), &CommitOptions{Yes: true}); err != nil {
		t.Fatalf("GenerateAndCommit: %v", err)
	}

	if len(uiMgr.infoMessages) == 0 {
		t.Error("expected a note about the non-conventional message")
	}
}
