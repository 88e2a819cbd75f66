// Package errors provides the error taxonomy and logging utilities for commit-ai.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode identifies the category of a failure.
type ErrorCode int

const (
	ErrConfiguration ErrorCode = iota + 100
	ErrUnsupportedProvider
	ErrMissingCredential
	ErrDiffUnavailable
	ErrProviderConnection
	ErrProviderResponse
	ErrProviderUnavailable
	ErrModelNotFound
	ErrMalformedGeneration
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrConfiguration:
		return "Configuration"
	case ErrUnsupportedProvider:
		return "UnsupportedProvider"
	case ErrMissingCredential:
		return "MissingCredential"
	case ErrDiffUnavailable:
		return "DiffUnavailable"
	case ErrProviderConnection:
		return "ProviderConnection"
	case ErrProviderResponse:
		return "ProviderResponse"
	case ErrProviderUnavailable:
		return "ProviderUnavailable"
	case ErrModelNotFound:
		return "ModelNotFound"
	case ErrMalformedGeneration:
		return "MalformedGeneration"
	default:
		return "Unknown"
	}
}

// MaxBodyInError caps how much of a provider response body is carried in an error.
const MaxBodyInError = 200

// AppError represents an application error with context.
// Every failure raised inside a provider or the orchestrator is one of these;
// it is rendered exactly once at the CLI top level and terminates the run.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a remediation suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetCode returns the error code for an error, or -1 when the chain
// contains no AppError.
func GetCode(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return -1
}

// GetExitCode returns the process exit code for an error. Every handled
// error is terminal for the invocation and exits 1.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Constructors for the taxonomy. Each failure mode in the providers and
// the orchestrator maps to exactly one of these.

// NewConfigurationError reports invalid or missing configuration.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Code:       ErrConfiguration,
		Message:    message,
		Suggestion: "Run 'commit-ai config' to review your settings",
	}
}

// NewUnsupportedProviderError reports a provider name outside the registry.
func NewUnsupportedProviderError(name string, valid []string) *AppError {
	return &AppError{
		Code:       ErrUnsupportedProvider,
		Message:    fmt.Sprintf("unsupported provider: %s", name),
		Suggestion: fmt.Sprintf("Valid providers: %s", strings.Join(valid, ", ")),
	}
}

// NewMissingCredentialError reports an empty API key at provider construction.
func NewMissingCredentialError(provider string) *AppError {
	return &AppError{
		Code:       ErrMissingCredential,
		Message:    fmt.Sprintf("API key is required for the %s provider", provider),
		Suggestion: "Set it with 'commit-ai config --api-key <key>' or the API_KEY environment variable",
	}
}

// NewDiffUnavailableError reports a git failure while obtaining the staged diff.
func NewDiffUnavailableError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrDiffUnavailable,
		Message: "could not obtain staged diff",
		Cause:   err,
	}
	if output != "" {
		appErr.WithContext("output", strings.TrimSpace(output))
	}
	return appErr
}

// NewProviderConnectionError reports a transport-level failure.
func NewProviderConnectionError(provider string, err error) *AppError {
	return &AppError{
		Code:       ErrProviderConnection,
		Message:    fmt.Sprintf("could not reach the %s API", provider),
		Cause:      err,
		Suggestion: "Check your network connection",
	}
}

// NewProviderResponseError reports a non-success status or malformed body.
// The body is truncated before it is attached.
func NewProviderResponseError(provider string, status int, body string) *AppError {
	appErr := &AppError{
		Code:    ErrProviderResponse,
		Message: fmt.Sprintf("%s API error (status %d)", provider, status),
	}
	return appErr.WithContext("status", status).WithContext("body", TruncateBody(body))
}

// NewProviderUnavailableError reports an unreachable local daemon.
func NewProviderUnavailableError(provider string, err error, remediation string) *AppError {
	return &AppError{
		Code:       ErrProviderUnavailable,
		Message:    fmt.Sprintf("%s is not reachable", provider),
		Cause:      err,
		Suggestion: remediation,
	}
}

// NewModelNotFoundError reports a model absent from the daemon's local list.
func NewModelNotFoundError(model string) *AppError {
	return &AppError{
		Code:       ErrModelNotFound,
		Message:    fmt.Sprintf("model %q is not installed", model),
		Suggestion: fmt.Sprintf("Pull it with 'ollama pull %s'", model),
	}
}

// NewMalformedGenerationError reports generation output that does not start
// with a recognized commit type. The raw text is kept for diagnostics.
func NewMalformedGenerationError(rawText string) *AppError {
	appErr := &AppError{
		Code:    ErrMalformedGeneration,
		Message: "generated text is not a conventional commit message",
	}
	return appErr.WithContext("raw_text", TruncateBody(rawText))
}

// TruncateBody trims a response body for inclusion in error context.
func TruncateBody(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > MaxBodyInError {
		return body[:MaxBodyInError] + "..."
	}
	return body
}

// FormatError formats an error for user display as a single block.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with the full cause chain and context
// for verbose mode. Sensitive data is masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	errMsg := SanitizeErrorMessage(err.Error())
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, errMsg))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys in error messages.
func SanitizeErrorMessage(msg string) string {
	return apiKeyPattern.ReplaceAllStringFunc(msg, func(match string) string {
		if len(match) <= 4 {
			return "****"
		}
		return strings.Repeat("*", len(match)-4) + match[len(match)-4:]
	})
}

// apiKeyPattern matches common API key shapes (sk-..., sk-ant-...).
var apiKeyPattern = regexp.MustCompile(`sk-(?:ant-)?[a-zA-Z0-9_-]{20,}`)
