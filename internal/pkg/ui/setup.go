package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/config"
)

// RunInteractiveSetup walks the user through first-time configuration and
// writes the result through the config manager.
func RunInteractiveSetup(cfgMgr config.Manager) error {
	fmt.Println("No configuration found. Let's set up commit-ai.")
	fmt.Println()

	var provider string
	err := huh.NewSelect[string]().
		Title("Select AI provider").
		Options(
			huh.NewOption("DeepSeek", "deepseek"),
			huh.NewOption("Claude", "claude"),
			huh.NewOption("Ollama (local)", "ollama"),
		).
		Value(&provider).
		Run()
	if err != nil {
		return err
	}

	var apiKey string
	var model string

	switch provider {
	case "deepseek":
		model = "deepseek-chat"
	case "claude":
		model = "claude-3-haiku-20240307"
	case "ollama":
		model = "codellama"
	}

	fields := []huh.Field{}

	if provider != "ollama" {
		fields = append(fields,
			huh.NewInput().
				Title("API key").
				Description("Enter your API key").
				Value(&apiKey).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("api key cannot be empty")
					}
					return nil
				}),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Model").
			Description("Model to use").
			Value(&model).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("model name cannot be empty")
				}
				return nil
			}),
	)

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	settings := map[string]string{
		"ai_provider": provider,
		"ai_model":    model,
	}
	if provider != "ollama" {
		settings["api_key"] = apiKey
	}
	if err := cfgMgr.Set(settings); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", cfgMgr.GetConfigPath())
	fmt.Println()

	return nil
}
