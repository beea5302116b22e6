package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"grammarbot/internal/config"
	"grammarbot/pkg/types"
)

// fakeInference answers like a Hugging Face inference server: the correction
// model rewrites one sentence and the classifier always picks LABEL_2.
func fakeInference(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Inputs string `json:"inputs"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/models/"+config.DefaultCorrectionModel):
			out := strings.TrimPrefix(body.Inputs, "grammar: ")
			if out == "She go to store." {
				out = "She goes to the store."
			}
			_ = json.NewEncoder(w).Encode([]map[string]string{{"generated_text": out}})
		case strings.HasSuffix(r.URL.Path, "/models/"+config.DefaultClassificationModel):
			_, _ = io.WriteString(w, `[[{"label":"LABEL_2","score":0.9},{"label":"LABEL_0","score":0.1}]]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunAnalyze_HFBackend(t *testing.T) {
	srv := fakeInference(t)
	cfg := config.Defaults()
	cfg.HF.BaseURL = srv.URL

	var out bytes.Buffer
	if err := runAnalyze(context.Background(), cfg, zerolog.Nop(), "She go to store.", &out); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var resp types.AnalyzeResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v (%s)", err, out.String())
	}
	if resp.CorrectedText != "She goes to the store." || len(resp.Errors) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Errors[0].OriginalSpan != "go" || resp.Errors[0].CorrectedSpan != "goes" || resp.Errors[0].ErrorType != "Verb Tense Error" {
		t.Fatalf("unexpected first error: %+v", resp.Errors[0])
	}
	if resp.Errors[1].OriginalSpan != "" || resp.Errors[1].CorrectedSpan != "the" {
		t.Fatalf("unexpected second error: %+v", resp.Errors[1])
	}
}

// The default classifier answers with NLI label names; argmax over them must
// land on the first labels of the table.
func TestRunAnalyze_DefaultClassifierLabelNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/models/"+config.DefaultCorrectionModel):
			_, _ = io.WriteString(w, `[{"generated_text":"I have a cat."}]`)
		case strings.HasSuffix(r.URL.Path, "/models/"+config.DefaultClassificationModel):
			_, _ = io.WriteString(w, `[[{"label":"ENTAILMENT","score":0.8},{"label":"NEUTRAL","score":0.15},{"label":"CONTRADICTION","score":0.05}]]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	cfg := config.Defaults()
	cfg.HF.BaseURL = srv.URL

	var out bytes.Buffer
	if err := runAnalyze(context.Background(), cfg, zerolog.Nop(), "I have a kat.", &out); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var resp types.AnalyzeResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v (%s)", err, out.String())
	}
	if len(resp.Errors) != 1 || resp.Errors[0].ErrorType != "Spelling Error" {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
}

func TestBuildBackends(t *testing.T) {
	cfg := config.Defaults()
	b, err := buildBackends(context.Background(), cfg)
	if err != nil {
		t.Fatalf("hf: %v", err)
	}
	if b.corrector.Name() != "hf" || b.classifier.Model() != config.DefaultClassificationModel {
		t.Fatalf("unexpected backends: %s %s", b.corrector.Name(), b.classifier.Model())
	}

	cfg.Backend = "gemini"
	cfg.Gemini.APIKey = ""
	if _, err := buildBackends(context.Background(), cfg); err == nil {
		t.Fatal("expected error for gemini without key")
	}
	cfg.Backend = "nope"
	if _, err := buildBackends(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenCache_DisabledOrUnreachable(t *testing.T) {
	cfg := config.Defaults()
	c, closeFn := openCache(context.Background(), cfg, zerolog.Nop())
	closeFn()
	if c != nil {
		t.Fatal("expected no cache without redis addr")
	}

	cfg.Redis.Addr = "127.0.0.1:1"
	c, closeFn = openCache(context.Background(), cfg, zerolog.Nop())
	closeFn()
	if c != nil {
		t.Fatal("expected no cache for unreachable redis")
	}
}

func TestRunMigrate_EmptyDatabaseURL(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.URL = ""
	if err := runMigrate(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error without database url")
	}
}

func TestRunMigrate_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammarbot.db")
	cfg := config.Defaults()
	cfg.Database.URL = "sqlite:///" + path
	if err := runMigrate(context.Background(), cfg, zerolog.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}
