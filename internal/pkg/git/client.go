// Package git shells out to the git binary for the few operations the
// commit flow needs: repository detection, staged-change detection, the
// staged diff, and the final commit.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
)

// CommandTimeout bounds every git subprocess call.
const CommandTimeout = 10 * time.Second

// Client defines the interface for git operations.
type Client interface {
	IsRepository(ctx context.Context) (bool, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	StagedDiff(ctx context.Context) (string, error)
	Commit(ctx context.Context, message, date string) error
}

// DefaultClient implements Client using exec.CommandContext.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient. It fails when the git binary is
// not on PATH, so every later call can assume git is runnable.
func NewClient() (*DefaultClient, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, apperrors.NewConfigurationError("git executable not found in PATH").
			WithSuggestion("Install git and make sure it is on your PATH")
	}
	return &DefaultClient{}, nil
}

// NewClientWithWorkDir creates a DefaultClient rooted at a specific directory.
func NewClientWithWorkDir(workDir string) (*DefaultClient, error) {
	c, err := NewClient()
	if err != nil {
		return nil, err
	}
	c.workDir = workDir
	return c, nil
}

func (c *DefaultClient) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}
	return cmd
}

// IsRepository reports whether the working directory is inside a git
// repository.
func (c *DefaultClient) IsRepository(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	err := c.command(ctx, "rev-parse", "--git-dir").Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewDiffUnavailableError(ctx.Err(), "")
		}
		// rev-parse exits 128 outside a repository.
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, apperrors.NewDiffUnavailableError(err, "")
	}
	return true, nil
}

// HasStagedChanges checks whether anything is staged for commit.
func (c *DefaultClient) HasStagedChanges(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	err := c.command(ctx, "diff", "--staged", "--quiet").Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewDiffUnavailableError(ctx.Err(), "")
		}
		// Exit code 1 means the staged tree differs from HEAD.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return true, nil
		}
		return false, apperrors.NewDiffUnavailableError(err, "")
	}
	return false, nil
}

// StagedDiff returns the staged diff verbatim. On failure the combined
// stdout/stderr of git is attached to the error so the user sees what
// git itself reported.
func (c *DefaultClient) StagedDiff(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	output, err := c.command(ctx, "diff", "--staged").CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewDiffUnavailableError(ctx.Err(), string(output))
		}
		return "", apperrors.NewDiffUnavailableError(err, string(output))
	}
	return string(output), nil
}

// Commit runs git commit with the given message. A non-empty date is
// passed through verbatim as --date.
func (c *DefaultClient) Commit(ctx context.Context, message, date string) error {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	args := []string{"commit"}
	if date != "" {
		args = append(args, "--date", date)
	}
	args = append(args, "-m", message)

	output, err := c.command(ctx, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("git commit timed out: %w", ctx.Err())
		}
		return fmt.Errorf("git commit failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}
