// Package ai provides the commit message generators for each supported
// provider and the registry that selects between them.
package ai

import (
	"context"
	"time"
)

const (
	// DefaultTemperature keeps generations focused and repeatable.
	DefaultTemperature = 0.3

	// DefaultTimeout bounds each provider request when no timeout is
	// configured.
	DefaultTimeout = 30 * time.Second
)

// GenerateRequest carries the staged diff to a provider. Model, when
// non-empty, overrides the provider's configured model for this call.
type GenerateRequest struct {
	Diff  string
	Model string
}

// GenerateResponse contains the generated commit message and the model
// that produced it.
type GenerateResponse struct {
	Message string
	Model   string
}

// ProviderConfig contains the settings a provider is constructed from.
type ProviderConfig struct {
	Name     string
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// Provider defines the interface for commit message generators.
type Provider interface {
	GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Name() string
	ValidateConfig(config ProviderConfig) error
}
