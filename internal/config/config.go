// Package config loads the dashboard's JSON configuration and the GitHub
// token.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	PageSize         int    `json:"pageSize"`
	BotLogin         string `json:"botLogin"`
	RetryDelay       int    `json:"retryDelayMs"`
	RetryMaxAttempts int    `json:"retryMaxAttempts"`
	RFMOnForcePush   string `json:"rfmOnForcePush"` // "unknown" or "false"
}

// Defaults
const (
	DefaultPageSize         = 50
	DefaultBotLogin         = "DrahtBot"
	DefaultRetryDelayMs     = 10000
	DefaultRetryMaxAttempts = 6
	DefaultRFMOnForcePush   = "unknown"
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "ackboard")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "ackboard")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ackboard")
		}
		return filepath.Join(home, ".config", "ackboard")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ackboard")
		}
		return filepath.Join(home, ".config", "ackboard")
	}
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	configPath := filepath.Join(DefaultConfigDir(), "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// RetryDelayDuration returns the configured retry delay as a time.Duration.
func (c *Config) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Millisecond
}

func defaults() *Config {
	return &Config{
		PageSize:         DefaultPageSize,
		BotLogin:         DefaultBotLogin,
		RetryDelay:       DefaultRetryDelayMs,
		RetryMaxAttempts: DefaultRetryMaxAttempts,
		RFMOnForcePush:   DefaultRFMOnForcePush,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.BotLogin == "" {
		cfg.BotLogin = DefaultBotLogin
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelayMs
	}
	if cfg.RetryMaxAttempts == 0 {
		cfg.RetryMaxAttempts = DefaultRetryMaxAttempts
	}
	if cfg.RFMOnForcePush == "" {
		cfg.RFMOnForcePush = DefaultRFMOnForcePush
	}
}

// LoadToken resolves the GitHub token: from tokenFile when given, otherwise
// from the GITHUB_TOKEN environment variable, with a .env file honored when
// present. A "bearer " prefix is stripped since the transport re-adds the
// scheme.
func LoadToken(tokenFile string) (string, error) {
	if tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		token := normalizeToken(string(data))
		if token == "" {
			return "", fmt.Errorf("token file %s is empty", tokenFile)
		}
		return token, nil
	}

	_ = godotenv.Load()
	token := normalizeToken(os.Getenv("GITHUB_TOKEN"))
	if token == "" {
		return "", fmt.Errorf("GITHUB_TOKEN not set; pass -token-file or export it")
	}
	return token, nil
}

func normalizeToken(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) > 0 && strings.EqualFold(fields[0], "bearer") {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}
