package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"grammarbot/internal/config"
	"grammarbot/internal/httpapi"
	"grammarbot/internal/service"
	"grammarbot/internal/store"
	"grammarbot/pkg/types"
)

func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	b, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()
	c, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	az := newAnalyzer(cfg, b, c, log)
	sanityCtx, cancelSanity := context.WithTimeout(ctx, 5*time.Second)
	if rep := az.SanityCheck(sanityCtx); rep.Error != "" {
		log.Warn().Bool("corrector_ok", rep.CorrectorOK).Bool("classifier_ok", rep.ClassifierOK).Str("error", rep.Error).Msg("model backend not reachable yet")
	}
	cancelSanity()

	svc := service.New(service.Options{
		Students:  store.NewStudentRepo(db),
		ErrorLogs: store.NewErrorLogRepo(db),
		Pipeline:  az,
		Pinger:    db,
		Logger:    &log,
	})

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetDefaultLogLevel(cfg.RequestLog)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetAnalyzeTimeoutSeconds(cfg.AnalyzeTimeoutSeconds)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", cfg.Backend).Msg("grammarbot listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// Whatever is still running gets its model calls canceled.
	cancelBase()
	if err != nil {
		log.Warn().Err(err).Msg("graceful shutdown timed out")
		return srv.Close()
	}
	return nil
}

func runMigrate(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	log.Info().Msg("schema up to date")
	return nil
}

func runAnalyze(ctx context.Context, cfg config.Config, log zerolog.Logger, text string, out io.Writer) error {
	b, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.close() }()
	c, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	res, err := newAnalyzer(cfg, b, c, log).Analyze(ctx, text)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(types.AnalyzeResponse{
		OriginalText:  text,
		CorrectedText: res.CorrectedText,
		Errors:        res.Errors,
	})
}

func runExport(ctx context.Context, cfg config.Config, log zerolog.Logger, studentID int64, path string) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	svc := service.New(service.Options{
		Students:  store.NewStudentRepo(db),
		ErrorLogs: store.NewErrorLogRepo(db),
		Logger:    &log,
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := svc.ExportErrors(ctx, studentID, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Int64("student_id", studentID).Str("file", path).Msg("export written")
	return nil
}
