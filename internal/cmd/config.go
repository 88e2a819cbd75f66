package cmd

import (
	"fmt"

	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/ai"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/security"
	"github.com/spf13/cobra"
)

// notConfigured is printed for settings that have no value yet.
const notConfigured = "not configured"

// NewConfigCmd creates the config command. Flags merge into the config
// file; with no flags the current settings are printed.
func NewConfigCmd() *cobra.Command {
	var (
		apiKey      string
		provider    string
		model       string
		defaultDate string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or update commit-ai configuration",
		Long: `View or update the commit-ai configuration stored in
~/.commit-ai/config.json.

Flags merge into the existing file; unset flags leave their settings
untouched. With no flags the current configuration is printed with the
API key masked.

Examples:
  commit-ai config                                # show current settings
  commit-ai config --provider deepseek --api-key sk-xxx
  commit-ai config --model claude-3-haiku-20240307
  commit-ai config --default-date "2024-01-15"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return apperrors.NewConfigurationError(err.Error())
			}

			values := map[string]string{}
			if cmd.Flags().Changed("api-key") {
				values["api_key"] = apiKey
			}
			if cmd.Flags().Changed("provider") {
				if !ai.IsValidProviderName(provider) {
					return apperrors.NewUnsupportedProviderError(provider, ai.ValidProviderNames())
				}
				values["ai_provider"] = provider
			}
			if cmd.Flags().Changed("model") {
				values["ai_model"] = model
			}
			if cmd.Flags().Changed("default-date") {
				values["default_date"] = defaultDate
			}

			if len(values) == 0 {
				return printConfig(mgr)
			}

			if err := mgr.Set(values); err != nil {
				return err
			}
			fmt.Printf("Configuration saved to %s\n", mgr.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the configured provider")
	cmd.Flags().StringVar(&provider, "provider", "", "AI provider (deepseek, claude, ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model to request from the provider")
	cmd.Flags().StringVar(&defaultDate, "default-date", "", "Default date passed to git commit --date")

	return cmd
}

// printConfig prints the current settings, masking the API key.
func printConfig(mgr config.Manager) error {
	cfg, err := mgr.Load()
	if err != nil {
		return apperrors.NewConfigurationError(err.Error())
	}

	fmt.Printf("Configuration file: %s\n\n", mgr.GetConfigPath())
	fmt.Printf("  ai_provider:  %s\n", orPlaceholder(cfg.Provider))
	fmt.Printf("  ai_model:     %s\n", orPlaceholder(cfg.Model))
	key := notConfigured
	if cfg.APIKey != "" {
		key = security.MaskAPIKey(cfg.APIKey)
	}
	fmt.Printf("  api_key:      %s\n", key)
	fmt.Printf("  default_date: %s\n", orPlaceholder(cfg.DefaultDate))
	fmt.Printf("  timeout:      %ds\n", cfg.Timeout)
	fmt.Printf("  history:      enabled=%t max_entries=%d\n", cfg.History.Enabled, cfg.History.MaxEntries)
	return nil
}

func orPlaceholder(value string) string {
	if value == "" {
		return notConfigured
	}
	return value
}
