package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"go.yaml.in/yaml/v4"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	APIBaseURL string        `yaml:"api_base_url"`
	ListenAddr string        `yaml:"listen_addr"`
	AuthToken  string        `yaml:"auth_token"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
	Storage    StorageConfig `yaml:"storage"`
	Nudge      NudgeConfig   `yaml:"nudge"`
}

type StorageConfig struct {
	// Backend is one of "bolt", "redis" or "memory".
	Backend       string `yaml:"backend"`
	Key           string `yaml:"key"`
	BoltPath      string `yaml:"bolt_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

type NudgeConfig struct {
	ResendAPIKey string `yaml:"resend_api_key"`
	Email        string `yaml:"email"`
	From         string `yaml:"from"`
}

func Default() Config {
	return Config{
		APIBaseURL: "http://localhost:8080",
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		Storage: StorageConfig{
			Backend:     "bolt",
			Key:         "habit-tracker-v1",
			BoltPath:    "habits.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "habits:",
		},
		Nudge: NudgeConfig{
			From: "onboarding@resend.dev",
		},
	}
}

// Load reads the YAML file named by HABITS_CONFIG, falling back to
// config.yaml in the working directory, then applies env overrides. A
// missing config.yaml is fine; a missing file that HABITS_CONFIG points at
// is an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("HABITS_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setenv(&cfg.APIBaseURL, "HABITS_API_BASE")
	setenv(&cfg.ListenAddr, "HABITS_LISTEN_ADDR")
	setenv(&cfg.AuthToken, "HABITS_AUTH_TOKEN")
	setenv(&cfg.LogLevel, "HABITS_LOG_LEVEL")
	setenv(&cfg.LogFormat, "HABITS_LOG_FORMAT")
	setenv(&cfg.Storage.Backend, "HABITS_STORAGE")
	setenv(&cfg.Storage.BoltPath, "HABITS_DB_PATH")
	setenv(&cfg.Storage.RedisAddr, "HABITS_REDIS_ADDR")
	setenv(&cfg.Storage.RedisPassword, "HABITS_REDIS_PASSWORD")
	setenv(&cfg.Nudge.ResendAPIKey, "HABITS_RESEND_API_KEY")
	setenv(&cfg.Nudge.Email, "HABITS_NOTIFY_EMAIL")

	if v := os.Getenv("HABITS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HABITS_REDIS_DB must be a valid integer: %v", err)
		}
		cfg.Storage.RedisDB = db
	}
	return nil
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	switch c.Storage.Backend {
	case "bolt":
		if c.Storage.BoltPath == "" {
			return fmt.Errorf("storage.bolt_path is required for the bolt backend")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
