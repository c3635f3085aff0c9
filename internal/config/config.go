package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/user/codewatch/internal/policy"
)

type Config struct {
	LogLevel      string `json:"log_level"`
	MaxConcurrent int    `json:"max_concurrent"`
	Agent         struct {
		Model      string            `json:"model"`
		ConfigPath string            `json:"config_path"`
		Prompts    map[string]string `json:"prompts,omitempty"`
	} `json:"agent"`
	Permissions []policy.Rule `json:"permissions"`
	Telegram    struct {
		Token  string `json:"token"`
		ChatID int64  `json:"chat_id"`
	} `json:"telegram"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LogLevel = "info"
	cfg.MaxConcurrent = 2
	cfg.Agent.Model = "anthropic/claude-sonnet-4-5"
	cfg.Agent.ConfigPath = filepath.Join(os.Getenv("HOME"), ".codewatch", "agent.json")
	cfg.Permissions = []policy.Rule{
		{Category: "edit", Disposition: policy.Ask},
		{Category: "shell", Disposition: policy.Ask},
		{Category: "fetch", Disposition: policy.Ask},
	}

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if model := os.Getenv("CODEWATCH_MODEL"); model != "" {
		cfg.Agent.Model = model
	}
	if tgToken := os.Getenv("TELEGRAM_BOT_TOKEN"); tgToken != "" {
		cfg.Telegram.Token = tgToken
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	return cfg, nil
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename default config: %w", err)
	}
	return nil
}

// ListValues returns the config as a flat dot-keyed map, with secrets masked
// when mask is true.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	flat := Flatten(nested)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue loads the config file and returns the value at the dot-separated key.
func GetValue(path, key string) (any, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	flat, err := ListValues(cfg, true)
	if err != nil {
		return nil, err
	}
	val, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return val, nil
}

// SetValue loads the config file, sets the dot-separated key, and saves it.
// Values that parse as JSON scalars (numbers, booleans) are stored typed;
// everything else is stored as a string.
func SetValue(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	flat := Flatten(nested)
	if _, ok := flat[key]; !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	flat[key] = parseScalar(value)

	merged, err := json.Marshal(Unflatten(flat))
	if err != nil {
		return fmt.Errorf("marshal updated config: %w", err)
	}
	updated := &Config{}
	if err := json.Unmarshal(merged, updated); err != nil {
		return fmt.Errorf("apply updated config: %w", err)
	}
	return writeDefaults(path, updated)
}

func parseScalar(value string) any {
	var out any
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return value
	}
	switch out.(type) {
	case float64, bool:
		return out
	default:
		return value
	}
}
