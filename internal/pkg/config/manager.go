package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultProvider is used when no provider is configured.
	DefaultProvider = "deepseek"

	// DefaultTimeoutSeconds bounds each provider request. The ancestor
	// behavior had no timeout at all; this deviation is deliberate and
	// the value is configurable via the timeout key.
	DefaultTimeoutSeconds = 30
)

// ViperManager implements the Manager interface using Viper over a JSON
// config file. Writes are whole-file: load, merge provided fields, rewrite.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager. If configPath is empty,
// the default per-user path (~/.commit-ai/config.json) is used.
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()
	v.SetConfigType("json")

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".commit-ai", "config.json")
	}

	v.SetConfigFile(configPath)

	// COMMIT_AI_API_KEY etc. override the file; the bare names (API_KEY,
	// AI_PROVIDER, ...) are kept as fallbacks for ancestor compatibility.
	v.SetEnvPrefix("COMMIT_AI")
	v.AutomaticEnv()
	bindEnvVars(v)

	setDefaults(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("api_key", "COMMIT_AI_API_KEY", "API_KEY")
	_ = v.BindEnv("ai_provider", "COMMIT_AI_PROVIDER", "AI_PROVIDER")
	_ = v.BindEnv("ai_model", "COMMIT_AI_MODEL", "AI_MODEL")
	_ = v.BindEnv("default_date", "COMMIT_AI_DEFAULT_DATE", "DEFAULT_DATE")
	_ = v.BindEnv("timeout", "COMMIT_AI_TIMEOUT")

	_ = v.BindEnv("history.enabled", "COMMIT_AI_HISTORY_ENABLED")
	_ = v.BindEnv("history.max_entries", "COMMIT_AI_HISTORY_MAX_ENTRIES")
	_ = v.BindEnv("history.file_path", "COMMIT_AI_HISTORY_FILE_PATH")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("ai_provider", DefaultProvider)
	v.SetDefault("ai_model", "")
	v.SetDefault("default_date", "")
	v.SetDefault("timeout", DefaultTimeoutSeconds)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 1000)
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("history.file_path", filepath.Join(homeDir, ".commit-ai", "history.json"))
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// Load loads the configuration. Priority: overrides > env > file > defaults.
// A missing file is not an error; defaults and environment apply.
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Set merges the provided fields into the config file and rewrites the whole
// document with 0600 permissions. There is no partial-field update protocol.
func (m *ViperManager) Set(values map[string]string) error {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, value := range values {
		m.v.Set(key, value)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file may hold an API key; keep it user-only.
	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// SetOverride sets a temporary override for a configuration key. Used for
// command-line flags, which win over env and file but never persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.v.ReadInConfig()
	return m.v.AllSettings()
}
