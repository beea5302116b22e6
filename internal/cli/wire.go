package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"grammarbot/internal/analyzer"
	"grammarbot/internal/backend/gemini"
	"grammarbot/internal/backend/hf"
	"grammarbot/internal/cache"
	"grammarbot/internal/config"
	"grammarbot/internal/store"
)

// backends holds the configured model clients and releases them on close.
type backends struct {
	corrector  analyzer.Corrector
	classifier analyzer.Classifier
	close      func() error
}

func buildBackends(ctx context.Context, cfg config.Config) (backends, error) {
	switch cfg.Backend {
	case "hf", "":
		c := hf.New(hf.Options{
			BaseURL:           cfg.HF.BaseURL,
			Token:             cfg.HF.Token,
			RequestTimeout:    time.Duration(cfg.HF.RequestTimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.HF.RequestsPerSecond,
			Burst:             cfg.HF.Burst,
		})
		return backends{
			corrector:  hf.NewCorrector(c, cfg.CorrectionModel),
			classifier: hf.NewClassifier(c, cfg.ClassificationModel, cfg.HF.LabelIDs),
			close:      func() error { return nil },
		}, nil
	case "gemini":
		e, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return backends{}, fmt.Errorf("gemini backend: %w", err)
		}
		labels := cfg.Labels
		if len(labels) == 0 {
			labels = analyzer.DefaultLabels()
		}
		return backends{
			corrector:  gemini.NewCorrector(e),
			classifier: gemini.NewClassifier(e, labels),
			close:      e.Close,
		}, nil
	default:
		return backends{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openCache connects to Redis when configured. A failed connection is logged
// and the service runs without a cache.
func openCache(ctx context.Context, cfg config.Config, log zerolog.Logger) (analyzer.Cache, func()) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}
	}
	rc, err := cache.NewRedis(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("analysis cache disabled")
		return nil, func() {}
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("analysis cache enabled")
	return rc, func() { _ = rc.Close() }
}

func openStore(ctx context.Context, cfg config.Config) (*store.DB, error) {
	return store.Open(ctx, cfg.Database.URL, store.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSeconds) * time.Second,
	})
}

func newAnalyzer(cfg config.Config, b backends, c analyzer.Cache, log zerolog.Logger) *analyzer.Analyzer {
	alog := log.With().Str("component", "analyzer").Logger()
	return analyzer.New(analyzer.Config{
		Corrector:     b.corrector,
		Classifier:    b.classifier,
		Labels:        cfg.Labels,
		Cache:         c,
		MaxInflight:   cfg.MaxInflight,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       cfg.MaxWait(),
		Publisher:     analyzer.NewLogPublisher(alog),
		Logger:        &alog,
	})
}
