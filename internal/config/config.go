package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PromptStoreMemory = "memory"
	PromptStoreBolt   = "bolt"
)

type Config struct {
	Port        string
	DataDir     string
	PromptStore string

	GenerateDelay time.Duration
	CheckDelay    time.Duration
	SessionTTL    time.Duration

	LogMode string
}

func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DataDir:     os.Getenv("DATA_DIR"),
		PromptStore: strings.ToLower(os.Getenv("PROMPT_STORE")),
		LogMode:     os.Getenv("LOG_MODE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.PromptStore == "" {
		cfg.PromptStore = PromptStoreMemory
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "dev"
	}

	switch cfg.PromptStore {
	case PromptStoreMemory, PromptStoreBolt:
	default:
		return nil, fmt.Errorf("PROMPT_STORE must be %q or %q, got %q", PromptStoreMemory, PromptStoreBolt, cfg.PromptStore)
	}

	for _, d := range []struct {
		name string
		def  time.Duration
		dst  *time.Duration
	}{
		{"GENERATE_DELAY", 500 * time.Millisecond, &cfg.GenerateDelay},
		{"CHECK_DELAY", 700 * time.Millisecond, &cfg.CheckDelay},
		{"SESSION_TTL", time.Hour, &cfg.SessionTTL},
	} {
		v, err := parseDurationEnv(d.name, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return cfg, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, d)
	}
	return d, nil
}
