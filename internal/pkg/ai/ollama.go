package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Dionizioaf/commit-ai-agent/internal/pkg/errors"
	"github.com/Dionizioaf/commit-ai-agent/internal/pkg/message"
)

const (
	// DefaultOllamaModel is the default model for Ollama.
	DefaultOllamaModel = "codellama"

	// DefaultOllamaEndpoint is the default address of the local daemon.
	DefaultOllamaEndpoint = "http://localhost:11434"

	ollamaVersionPath  = "/api/version"
	ollamaTagsPath     = "/api/tags"
	ollamaGeneratePath = "/api/generate"
)

// OllamaProvider generates commit messages through a local Ollama daemon.
// The daemon has no auth and no hosted SLA, so generation is preceded by
// two preflights: a liveness probe and a check that the requested model
// is installed.
type OllamaProvider struct {
	httpClient *http.Client
	config     ProviderConfig
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaProvider creates a new Ollama provider. No credential is
// required; the daemon is local.
func NewOllamaProvider(config ProviderConfig) (*OllamaProvider, error) {
	if err := validateOllamaConfig(config); err != nil {
		return nil, err
	}

	if config.Model == "" {
		config.Model = DefaultOllamaModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultOllamaEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &OllamaProvider{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}, nil
}

func validateOllamaConfig(config ProviderConfig) error {
	if config.Endpoint != "" &&
		!strings.HasPrefix(config.Endpoint, "http://") &&
		!strings.HasPrefix(config.Endpoint, "https://") {
		return apperrors.NewConfigurationError("ollama endpoint must start with http:// or https://")
	}
	return nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return ProviderNameOllama
}

// ValidateConfig validates the provider configuration.
func (p *OllamaProvider) ValidateConfig(config ProviderConfig) error {
	return validateOllamaConfig(config)
}

// GenerateCommitMessage generates a commit message using the local
// daemon. The daemon echoes prose as happily as commit messages, so the
// output is additionally checked for a recognized type prefix before it
// is accepted.
func (p *OllamaProvider) GenerateCommitMessage(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, apperrors.NewConfigurationError("generate request cannot be nil")
	}

	model := p.config.Model
	if req.Model != "" {
		model = req.Model
	}

	if err := p.checkDaemon(ctx); err != nil {
		return nil, err
	}
	if err := p.checkModelInstalled(ctx, model); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(req.Diff)

	apperrors.LogAPIRequest(ProviderNameOllama, p.config.Endpoint, model, len(prompt))
	startTime := time.Now()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint+ollamaGeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewProviderConnectionError(ProviderNameOllama, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.NewProviderConnectionError(ProviderNameOllama, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderResponseError(ProviderNameOllama, httpResp.StatusCode, string(respBody))
	}

	var resp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, apperrors.NewProviderResponseError(ProviderNameOllama, httpResp.StatusCode, string(respBody))
	}
	if resp.Error != "" {
		return nil, apperrors.NewProviderResponseError(ProviderNameOllama, httpResp.StatusCode, resp.Error)
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" || !message.HasTypePrefix(text) {
		return nil, apperrors.NewMalformedGenerationError(text)
	}

	apperrors.LogAPIResponse(ProviderNameOllama, httpResp.StatusCode, len(text), time.Since(startTime))

	return &GenerateResponse{
		Message: text,
		Model:   model,
	}, nil
}

// checkDaemon probes /api/version. An unreachable daemon means generation
// is never attempted.
func (p *OllamaProvider) checkDaemon(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Endpoint+ollamaVersionPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create version request: %w", err)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewProviderUnavailableError(ProviderNameOllama, err, "Start it with 'ollama serve'")
	}
	defer httpResp.Body.Close()
	io.Copy(io.Discard, httpResp.Body)

	if httpResp.StatusCode != http.StatusOK {
		return apperrors.NewProviderUnavailableError(
			ProviderNameOllama,
			fmt.Errorf("version endpoint returned status %d", httpResp.StatusCode),
			"Start it with 'ollama serve'",
		)
	}
	return nil
}

// checkModelInstalled asks the daemon for its installed models and
// requires the requested one among them, matching the exact name or the
// name up to the ':' tag separator.
func (p *OllamaProvider) checkModelInstalled(ctx context.Context, model string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Endpoint+ollamaTagsPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create tags request: %w", err)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewProviderConnectionError(ProviderNameOllama, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return apperrors.NewProviderConnectionError(ProviderNameOllama, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return apperrors.NewProviderResponseError(ProviderNameOllama, httpResp.StatusCode, string(respBody))
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return apperrors.NewProviderResponseError(ProviderNameOllama, httpResp.StatusCode, string(respBody))
	}

	for _, installed := range tags.Models {
		if installed.Name == model {
			return nil
		}
		if base, _, ok := strings.Cut(installed.Name, ":"); ok && base == model {
			return nil
		}
	}
	return apperrors.NewModelNotFoundError(model)
}
