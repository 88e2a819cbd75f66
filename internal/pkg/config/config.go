// Package config provides configuration management for commit-ai.
package config

// Config represents the complete commit-ai configuration. The zero keys
// mirror the JSON document on disk: api_key, ai_provider, ai_model,
// default_date, timeout, history.*.
type Config struct {
	APIKey      string        `mapstructure:"api_key"`
	Provider    string        `mapstructure:"ai_provider"`
	Model       string        `mapstructure:"ai_model"`
	DefaultDate string        `mapstructure:"default_date"`
	Timeout     int           `mapstructure:"timeout"` // seconds per provider request
	History     HistoryConfig `mapstructure:"history"`
}

// HistoryConfig contains generation-history settings.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	FilePath   string `mapstructure:"file_path"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Set(values map[string]string) error
	List() map[string]interface{}
	GetConfigPath() string
	ConfigExists() bool
}
