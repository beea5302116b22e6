package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: ":9999"
backend: hf
labels: [A, B]
database:
  url: postgres://u@h/db
redis:
  addr: localhost:6379
hf:
  base_url: http://localhost:8080
  label_ids:
    LABEL_X: 3
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.Database.URL != "postgres://u@h/db" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Labels) != 2 || cfg.HF.BaseURL != "http://localhost:8080" || cfg.HF.LabelIDs["LABEL_X"] != 3 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	// Unset keys keep defaults.
	if cfg.CorrectionModel != DefaultCorrectionModel || !cfg.CORS.Enabled || cfg.MaxInflight != 2 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","backend":"gemini","gemini":{"api_key":"k","model":"g"},"cors":{"enabled":false}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.Backend != "gemini" || cfg.Gemini.APIKey != "k" || cfg.Gemini.Model != "g" || cfg.CORS.Enabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr = \":8081\"\nmax_inflight = 4\n\n[redis]\naddr = \"r:6379\"\nttl_seconds = 60\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.MaxInflight != 4 || cfg.Redis.Addr != "r:6379" || cfg.Redis.TTLSeconds != 60 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Fatalf("got %q", got)
	}
	if got := expandHome("/abs/x.yaml"); got != "/abs/x.yaml" {
		t.Fatalf("got %q", got)
	}
}
