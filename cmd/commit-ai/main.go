// Package main is the entry point for the commit-ai CLI, an AI-powered
// generator of Conventional Commits messages from staged git changes.
package main

import (
	"fmt"
	"os"

	"github.com/Dionizioaf/commit-ai-agent/internal/cmd"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprint(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
