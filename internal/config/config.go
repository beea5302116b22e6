// Package config holds the service configuration: defaults, file loading,
// .env files and environment overrides.
package config

import (
	"fmt"
	"time"
)

// DefaultDatabaseURL is a SQLite file in the working directory.
const DefaultDatabaseURL = "sqlite:///./grammarbot.db"

// Default model names. The correction model is a T5 fine-tune that expects a
// "grammar: " prefix; the classifier is a DistilBERT sequence classifier.
const (
	DefaultCorrectionModel     = "vennify/t5-base-grammar-correction"
	DefaultClassificationModel = "typeform/distilbert-base-uncased-mnli"
	DefaultGeminiModel         = "gemini-1.5-flash"
)

// Config holds runtime parameters for the service.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// zerolog level for the process logger: debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// json or console.
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
	// Default per-request log level: off, error, info, debug.
	RequestLog             string `json:"request_log" yaml:"request_log" toml:"request_log"`
	MaxBodyBytes           int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	AnalyzeTimeoutSeconds  int64  `json:"analyze_timeout_seconds" yaml:"analyze_timeout_seconds" toml:"analyze_timeout_seconds"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`

	CORS     CORSConfig     `json:"cors" yaml:"cors" toml:"cors"`
	Database DatabaseConfig `json:"database" yaml:"database" toml:"database"`
	Redis    RedisConfig    `json:"redis" yaml:"redis" toml:"redis"`

	// Model backend: hf or gemini.
	Backend             string `json:"backend" yaml:"backend" toml:"backend"`
	CorrectionModel     string `json:"correction_model" yaml:"correction_model" toml:"correction_model"`
	ClassificationModel string `json:"classification_model" yaml:"classification_model" toml:"classification_model"`
	// Error labels in classifier id order. Empty keeps the built-in table.
	Labels []string `json:"labels" yaml:"labels" toml:"labels"`

	HF     HFConfig     `json:"hf" yaml:"hf" toml:"hf"`
	Gemini GeminiConfig `json:"gemini" yaml:"gemini" toml:"gemini"`

	MaxInflight   int `json:"max_inflight" yaml:"max_inflight" toml:"max_inflight"`
	MaxQueueDepth int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWaitMS     int `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms"`
}

type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

type DatabaseConfig struct {
	// postgres:// URL, key=value Postgres DSN, or sqlite:///path.db.
	URL                    string `json:"url" yaml:"url" toml:"url"`
	MaxOpenConns           int    `json:"max_open_conns" yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns           int    `json:"max_idle_conns" yaml:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `json:"conn_max_lifetime_seconds" yaml:"conn_max_lifetime_seconds" toml:"conn_max_lifetime_seconds"`
	// Create tables on serve start.
	AutoMigrate bool `json:"auto_migrate" yaml:"auto_migrate" toml:"auto_migrate"`
}

// RedisConfig enables the analysis cache when Addr is set.
type RedisConfig struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	Password   string `json:"password" yaml:"password" toml:"password"`
	DB         int    `json:"db" yaml:"db" toml:"db"`
	TTLSeconds int    `json:"ttl_seconds" yaml:"ttl_seconds" toml:"ttl_seconds"`
}

type HFConfig struct {
	BaseURL               string  `json:"base_url" yaml:"base_url" toml:"base_url"`
	Token                 string  `json:"token" yaml:"token" toml:"token"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	RequestsPerSecond     float64 `json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst                 int     `json:"burst" yaml:"burst" toml:"burst"`
	// Maps label names returned by the classifier to label ids.
	LabelIDs map[string]int `json:"label_ids" yaml:"label_ids" toml:"label_ids"`
}

type GeminiConfig struct {
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model  string `json:"model" yaml:"model" toml:"model"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:                   ":8000",
		LogLevel:               "info",
		LogFormat:              "json",
		RequestLog:             "info",
		MaxBodyBytes:           1 << 20,
		AnalyzeTimeoutSeconds:  120,
		ShutdownTimeoutSeconds: 10,
		CORS: CORSConfig{
			Enabled: true,
			Origins: []string{"*"},
			Methods: []string{"GET", "POST", "OPTIONS"},
			Headers: []string{"*"},
		},
		Database: DatabaseConfig{
			URL:                    DefaultDatabaseURL,
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeSeconds: 300,
			AutoMigrate:            true,
		},
		Redis:               RedisConfig{TTLSeconds: 24 * 3600},
		Backend:             "hf",
		CorrectionModel:     DefaultCorrectionModel,
		ClassificationModel: DefaultClassificationModel,
		HF:                  HFConfig{RequestTimeoutSeconds: 60},
		Gemini:              GeminiConfig{Model: DefaultGeminiModel},
		MaxInflight:         2,
		MaxQueueDepth:       32,
		MaxWaitMS:           30000,
	}
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is empty")
	}
	switch c.Backend {
	case "hf":
		if c.CorrectionModel == "" || c.ClassificationModel == "" {
			return fmt.Errorf("hf backend needs correction_model and classification_model")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini backend needs gemini.api_key (or GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown backend %q (want hf or gemini)", c.Backend)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log_format %q (want json or console)", c.LogFormat)
	}
	return nil
}

// MaxWait returns MaxWaitMS as a duration.
func (c Config) MaxWait() time.Duration { return time.Duration(c.MaxWaitMS) * time.Millisecond }
