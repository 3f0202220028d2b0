// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/lexis/internal/llm"
)

// Config holds all runtime settings.
type Config struct {
	Env      string
	HTTPAddr string

	// DB is an SQLite path/URI or a postgres:// DSN. Empty means the
	// default XDG data path.
	DB string

	Location *time.Location

	Daily DailyConfig

	// VocabFile is an optional XLSX/CSV vocabulary pool loaded at startup.
	VocabFile string

	RemoteGrading  bool
	GradingTimeout time.Duration

	// LLM.Provider is empty when no provider is configured.
	LLM llm.Config
}

// DailyConfig sizes the daily challenge.
type DailyConfig struct {
	WordCount    int
	MaxQuestions int
}

// Load reads .env (if present) and the LEXIS_* environment.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	loc := time.Local
	if tz := os.Getenv("LEXIS_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("LEXIS_TIMEZONE: %w", err)
		}
		loc = l
	}

	wordCount, err := getInt("LEXIS_DAILY_WORDS", 5)
	if err != nil {
		return nil, err
	}
	maxQuestions, err := getInt("LEXIS_DAILY_MAX_QUESTIONS", 10)
	if err != nil {
		return nil, err
	}
	remote, err := strconv.ParseBool(getEnv("LEXIS_REMOTE_GRADING", "true"))
	if err != nil {
		return nil, fmt.Errorf("LEXIS_REMOTE_GRADING: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("LEXIS_GRADING_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("LEXIS_GRADING_TIMEOUT: %w", err)
	}

	llmCfg := llm.ConfigFromEnv()
	if os.Getenv("LEXIS_LLM_PROVIDER") == "" {
		// Without an explicit provider or a vendor key, run LLM-free.
		discovered, ok := llm.DiscoverConfig()
		if ok {
			llmCfg = discovered
		} else {
			llmCfg.Provider = ""
		}
	}

	return &Config{
		Env:      getEnv("LEXIS_ENV", "development"),
		HTTPAddr: getEnv("LEXIS_HTTP_ADDR", ":8080"),
		DB:       os.Getenv("LEXIS_DB"),
		Location: loc,
		Daily: DailyConfig{
			WordCount:    wordCount,
			MaxQuestions: maxQuestions,
		},
		VocabFile:      os.Getenv("LEXIS_VOCAB_FILE"),
		RemoteGrading:  remote,
		GradingTimeout: timeout,
		LLM:            llmCfg,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
