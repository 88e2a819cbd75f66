package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command. It runs the same pipeline
// as commit but stops after printing the message, so the output can be
// piped into scripts.
func NewGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message without committing",
		Long: `Generate a Conventional Commits message from your staged changes and
print it to stdout without committing.

Examples:
  commit-ai generate
  commit-ai generate --provider ollama --model codellama`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			service, opts, err := buildService(cmd, serviceOptions{printOnly: true})
			if err != nil {
				return err
			}
			return service.GenerateAndCommit(ctx, opts)
		},
	}
}
