package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultDeepSeekModel is the default model for DeepSeek.
	DefaultDeepSeekModel = "deepseek-chat"

	// DefaultDeepSeekEndpoint is the default API endpoint for DeepSeek.
	DefaultDeepSeekEndpoint = "https://api.deepseek.com/v1"

	// deepSeekMaxTokens bounds the generated message length.
	deepSeekMaxTokens = 200
)

// DeepSeekProvider generates commit messages through the DeepSeek API.
// DeepSeek exposes an OpenAI-compatible surface, so the go-openai client
// is pointed at its endpoint.
type DeepSeekProvider struct {
	client *openai.Client
	config ProviderConfig
}

// NewDeepSeekProvider creates a new DeepSeek provider. The credential is
// checked here so a missing key fails before any network I/O.
func NewDeepSeekProvider(config ProviderConfig) (*DeepSeekProvider, error) {
	if err := validateDeepSeekConfig(config); err != nil {
		return nil, err
	}

	if config.Model == "" {
		config.Model = DefaultDeepSeekModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultDeepSeekEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.Endpoint

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout:   config.Timeout,
		Transport: transport,
	}

	return &DeepSeekProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

func validateDeepSeekConfig(config ProviderConfig) error {
	if config.APIKey == "" {
		return apperrors.NewMissingCredentialError(ProviderNameDeepSeek)
	}
	return nil
}

// Name returns the provider name.
func (p *DeepSeekProvider) Name() string {
	return ProviderNameDeepSeek
}

// ValidateConfig validates the provider configuration.
func (p *DeepSeekProvider) ValidateConfig(config ProviderConfig) error {
	return validateDeepSeekConfig(config)
}

// GenerateCommitMessage generates a commit message using DeepSeek.
func (p *DeepSeekProvider) GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, apperrors.NewConfigurationError("generate request cannot be nil")
	}

	model := p.config.Model
	if req.Model != "" {
		model = req.Model
	}
	prompt := BuildPrompt(req.Diff)

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: DefaultTemperature,
		MaxTokens:   deepSeekMaxTokens,
	}

	apperrors.LogAPIRequest(ProviderNameDeepSeek, p.config.Endpoint, model, len(prompt))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, wrapDeepSeekError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, apperrors.NewProviderResponseError(ProviderNameDeepSeek, http.StatusOK, "response contained no choices")
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	apperrors.LogAPIResponse(ProviderNameDeepSeek, http.StatusOK, len(message), time.Since(startTime))

	return &GenerateResponse{
		Message: message,
		Model:   model,
	}, nil
}

// wrapDeepSeekError maps client failures onto the error taxonomy: API
// errors carry the upstream status and body, everything else is a
// transport failure.
func wrapDeepSeekError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewProviderResponseError(ProviderNameDeepSeek, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.NewProviderResponseError(ProviderNameDeepSeek, reqErr.HTTPStatusCode, reqErr.Error())
	}

	return apperrors.NewProviderConnectionError(ProviderNameDeepSeek, err)
}
