package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. With no arguments it tries
// ./.env and ignores its absence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(files...)
}

// ApplyEnv overrides cfg with environment variables.
func ApplyEnv(cfg *Config) {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	num := func(dst *int, key string) {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			*dst = v
		}
	}

	str(&cfg.Addr, "GRAMMARBOT_ADDR")
	str(&cfg.LogLevel, "GRAMMARBOT_LOG_LEVEL")
	str(&cfg.LogFormat, "GRAMMARBOT_LOG_FORMAT")
	str(&cfg.RequestLog, "GRAMMARBOT_REQUEST_LOG")
	str(&cfg.Database.URL, "GRAMMARBOT_DATABASE_URL", "DATABASE_URL")
	str(&cfg.Redis.Addr, "GRAMMARBOT_REDIS_ADDR")
	str(&cfg.Redis.Password, "GRAMMARBOT_REDIS_PASSWORD")
	num(&cfg.Redis.DB, "GRAMMARBOT_REDIS_DB")
	str(&cfg.Backend, "GRAMMARBOT_BACKEND")
	str(&cfg.CorrectionModel, "GRAMMARBOT_CORRECTION_MODEL")
	str(&cfg.ClassificationModel, "GRAMMARBOT_CLASSIFICATION_MODEL")
	str(&cfg.HF.BaseURL, "GRAMMARBOT_HF_BASE_URL")
	str(&cfg.HF.Token, "GRAMMARBOT_HF_TOKEN", "HF_TOKEN")
	str(&cfg.Gemini.APIKey, "GRAMMARBOT_GEMINI_API_KEY", "GEMINI_API_KEY")
	str(&cfg.Gemini.Model, "GRAMMARBOT_GEMINI_MODEL")
	num(&cfg.MaxInflight, "GRAMMARBOT_MAX_INFLIGHT")
	if v := os.Getenv("GRAMMARBOT_LABELS"); v != "" {
		cfg.Labels = SplitCSV(v)
	}
	if v := os.Getenv("GRAMMARBOT_CORS_ORIGINS"); v != "" {
		cfg.CORS.Origins = SplitCSV(v)
	}
}

// SplitCSV splits a comma separated list, trimming blanks and dropping empty
// items.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
