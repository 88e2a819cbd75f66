package ai

import (
	"sort"

	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
)

// ProviderName constants for the supported providers.
const (
	ProviderNameDeepSeek = "deepseek"
	ProviderNameClaude   = "claude"
	ProviderNameOllama   = "ollama"
)

// providerRegistry maps provider names to their constructors. The set is
// closed; adding a provider means adding an entry here.
var providerRegistry = map[string]func(ProviderConfig) (Provider, error){
	ProviderNameDeepSeek: func(cfg ProviderConfig) (Provider, error) { return NewDeepSeekProvider(cfg) },
	ProviderNameClaude:   func(cfg ProviderConfig) (Provider, error) { return NewClaudeProvider(cfg) },
	ProviderNameOllama:   func(cfg ProviderConfig) (Provider, error) { return NewOllamaProvider(cfg) },
}

// ValidProviderNames returns the supported provider names in sorted order.
func ValidProviderNames() []string {
	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidProviderName reports whether name identifies a supported provider.
func IsValidProviderName(name string) bool {
	_, ok := providerRegistry[name]
	return ok
}

// NewProvider creates a provider from the configuration. An unknown name
// yields an UnsupportedProviderError; a constructor's own failure (such as
// a missing credential) propagates unchanged.
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigurationError("provider configuration is required")
	}

	construct, ok := providerRegistry[cfg.Name]
	if !ok {
		return nil, apperrors.NewUnsupportedProviderError(cfg.Name, ValidProviderNames())
	}
	return construct(*cfg)
}
