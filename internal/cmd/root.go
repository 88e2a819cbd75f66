// Package cmd contains the CLI command definitions for commit-ai.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the commit-ai CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commit-ai",
		Short: "AI-powered git commit message generator",
		Long: `commit-ai generates Conventional Commits messages from your staged
changes using an AI provider (DeepSeek, Claude, or a local Ollama
daemon), shows you the result, and commits on confirmation.

Running commit-ai with no subcommand starts the commit flow.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare invocation runs the commit flow.
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := &CommitFlags{}
			flags.Yes, _ = cmd.Flags().GetBool("yes")
			flags.Date, _ = cmd.Flags().GetString("date")
			return runCommit(cmd, flags)
		},
	}

	rootCmd.SetVersionTemplate(`commit-ai {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.commit-ai/config.json)")
	rootCmd.PersistentFlags().String("provider", "", "AI provider to use (deepseek, claude, ollama)")
	rootCmd.PersistentFlags().String("model", "", "AI model to use")

	// Commit-specific flags on the root so the bare invocation accepts them.
	rootCmd.Flags().BoolP("yes", "y", false, "Skip confirmation and commit immediately")
	rootCmd.Flags().StringP("date", "d", "", "Date passed to git commit --date")

	rootCmd.AddCommand(NewCommitCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
