package cmd

import (
	"fmt"

	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/history"
	"github.com/spf13/cobra"
)

// DefaultHistoryLimit is how many entries the history command shows
// when --limit is not given.
const DefaultHistoryLimit = 20

// NewHistoryCmd creates the history command and its clear subcommand.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously generated commit messages",
		Long: `Show previously generated commit messages, newest first.

Each entry records the message, provider, model and whether the commit
actually happened.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newHistoryManager(cmd)
			if err != nil {
				return err
			}

			entries, err := mgr.List(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No history entries")
				return nil
			}

			for _, entry := range entries {
				status := "generated"
				if entry.Committed {
					status = "committed"
				}
				fmt.Printf("%s  %s  [%s/%s]  %s\n",
					entry.Timestamp.Format("2006-01-02 15:04"),
					status,
					entry.Provider,
					entry.Model,
					entry.Message,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of entries to show")
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newHistoryManager(cmd)
			if err != nil {
				return err
			}
			if err := mgr.Clear(); err != nil {
				return err
			}
			fmt.Println("History cleared")
			return nil
		},
	}
}

// newHistoryManager builds a history manager from the configured file
// path, honoring the --config flag.
func newHistoryManager(cmd *cobra.Command) (history.Manager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError(err.Error())
	}
	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, apperrors.NewConfigurationError(err.Error())
	}
	return history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries), nil
}
