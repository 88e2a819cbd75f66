package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
)

const (
	// DefaultClaudeModel is the default model for Claude.
	DefaultClaudeModel = "claude-3-haiku-20240307"

	// claudeMaxTokens bounds the generated message length.
	claudeMaxTokens = 100
)

// ClaudeProvider generates commit messages through the Anthropic API
// using the official SDK.
type ClaudeProvider struct {
	client anthropic.Client
	config ProviderConfig
}

// NewClaudeProvider creates a new Claude provider. The credential is
// checked here so a missing key fails before any network I/O. SDK
// retries are disabled; a failed request surfaces immediately.
func NewClaudeProvider(config ProviderConfig) (*ClaudeProvider, error) {
	if err := validateClaudeConfig(config); err != nil {
		return nil, err
	}

	if config.Model == "" {
		config.Model = DefaultClaudeModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(config.Timeout),
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(config.Endpoint))
	}

	return &ClaudeProvider{
		client: anthropic.NewClient(opts...),
		config: config,
	}, nil
}

func validateClaudeConfig(config ProviderConfig) error {
	if config.APIKey == "" {
		return apperrors.NewMissingCredentialError(ProviderNameClaude)
	}
	return nil
}

// Name returns the provider name.
func (p *ClaudeProvider) Name() string {
	return ProviderNameClaude
}

// ValidateConfig validates the provider configuration.
func (p *ClaudeProvider) ValidateConfig(config ProviderConfig) error {
	return validateClaudeConfig(config)
}

// GenerateCommitMessage generates a commit message using Claude.
func (p *ClaudeProvider) GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, apperrors.NewConfigurationError("generate request cannot be nil")
	}

	model := p.config.Model
	if req.Model != "" {
		model = req.Model
	}
	prompt := BuildPrompt(req.Diff)

	apperrors.LogAPIRequest(ProviderNameClaude, "https://api.anthropic.com", model, len(prompt))
	startTime := time.Now()

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   claudeMaxTokens,
		Temperature: anthropic.Float(DefaultTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, wrapClaudeError(err)
	}

	if len(msg.Content) == 0 {
		return nil, apperrors.NewProviderResponseError(ProviderNameClaude, 200, "response contained no content blocks")
	}

	message := strings.TrimSpace(msg.Content[0].Text)
	apperrors.LogAPIResponse(ProviderNameClaude, 200, len(message), time.Since(startTime))

	return &GenerateResponse{
		Message: message,
		Model:   model,
	}, nil
}

// wrapClaudeError maps SDK failures onto the error taxonomy.
func wrapClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apperrors.NewProviderResponseError(ProviderNameClaude, apiErr.StatusCode, apiErr.Error())
	}
	return apperrors.NewProviderConnectionError(ProviderNameClaude, err)
}
