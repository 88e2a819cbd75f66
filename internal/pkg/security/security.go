// Package security provides secret-hygiene utilities for commit-ai.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// APIKeyFormat defines the expected key shape per provider.
// Providers without a pattern skip the shape check.
var APIKeyFormat = map[string]*regexp.Regexp{
	"deepseek": regexp.MustCompile(`^sk-[a-zA-Z0-9]{20,}$`),
	"claude":   regexp.MustCompile(`^sk-ant-[a-zA-Z0-9_-]{20,}$`),
	"ollama":   nil, // local daemon, no credential
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
// Use it anywhere a key could reach the terminal or a log.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// ValidateAPIKeyFormat checks the shape of an API key for a provider.
// Returns nil when the key looks plausible, or an error describing the issue.
func ValidateAPIKeyFormat(provider, apiKey string) error {
	if provider == "ollama" {
		return nil
	}

	if apiKey == "" {
		return fmt.Errorf("API key is required for the %s provider", provider)
	}

	if len(apiKey) < 20 {
		return fmt.Errorf("API key appears to be invalid (too short)")
	}

	if pattern, ok := APIKeyFormat[provider]; ok && pattern != nil {
		if !pattern.MatchString(apiKey) {
			return fmt.Errorf("API key format appears invalid for the %s provider", provider)
		}
	}

	return nil
}

// SanitizeForLogging masks potential secrets in a string before it is logged.
func SanitizeForLogging(s string) string {
	patterns := []struct {
		regex       *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`sk-(?:ant-)?[a-zA-Z0-9_-]{20,}`), "sk-****"},
		{regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`), "Bearer ****"},
		{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api_secret|secret[_-]?key)\s*[:=]\s*["']?[a-zA-Z0-9._-]+["']?`), "$1=****"},
		{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']?[^\s"']+["']?`), "$1=****"},
	}

	result := s
	for _, p := range patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}

	return result
}
