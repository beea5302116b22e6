// Package cli builds the grammarbot command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"grammarbot/internal/config"
)

// Command actions. Tests replace them to check flag wiring without
// touching a database or a model server.
var (
	fnServe   = runServe
	fnMigrate = runMigrate
	fnAnalyze = runAnalyze
	fnExport  = runExport
)

// Execute runs the command tree with args and returns the first error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := buildRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type rootFlags struct {
	configPath string
	envFile    string
	addr       string
	logLevel   string
	logFormat  string
	dbURL      string
	redisAddr  string
	backend    string
	hfBaseURL  string
}

// buildRootCmd constructs the command tree. Configuration is resolved in
// PersistentPreRunE: defaults, then the config file, then .env and the
// environment, then flags that were set explicitly.
func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		f   rootFlags
		cfg config.Config
	)
	root := &cobra.Command{
		Use:           "grammarbot",
		Short:         "Grammar correction and error tracking service for students",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&f.envFile, "env-file", "", "Env file to load (defaults to ./.env when present)")
	pf.StringVar(&f.addr, "addr", "", "HTTP listen address, e.g. :8000")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: json|console")
	pf.StringVar(&f.dbURL, "database-url", "", "Database URL: postgres://... or sqlite:///path.db (defaults DATABASE_URL)")
	pf.StringVar(&f.redisAddr, "redis-addr", "", "Redis address for the analysis cache (empty disables)")
	pf.StringVar(&f.backend, "backend", "", "Model backend: hf|gemini")
	pf.StringVar(&f.hfBaseURL, "hf-base-url", "", "Inference server base URL for the hf backend")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c, err := resolveConfig(cmd, f)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	}

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  grammarbot serve --config grammarbot.yaml\n  grammarbot serve --addr :8000 --database-url postgres://localhost/grammarbot",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return fnServe(cmd.Context(), cfg, newLogger(cfg, stderr))
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnMigrate(cmd.Context(), cfg, newLogger(cfg, stderr))
		},
	}

	var text string
	analyzeCmd := &cobra.Command{
		Use:     "analyze",
		Short:   "Run the analysis pipeline once and print the result as JSON",
		Example: "  grammarbot analyze --text 'She go to store.'\n  echo 'She go to store.' | grammarbot analyze --text -",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(b)
			}
			if text == "" {
				return fmt.Errorf("--text is required")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return fnAnalyze(cmd.Context(), cfg, newLogger(cfg, stderr), text, stdout)
		},
	}
	analyzeCmd.Flags().StringVar(&text, "text", "", "Text to analyze ('-' reads stdin)")

	var (
		studentID int64
		out       string
	)
	exportCmd := &cobra.Command{
		Use:     "export",
		Short:   "Write a student's error history to an XLSX file",
		Example: "  grammarbot export --student-id 1 --out alice.xlsx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if studentID <= 0 {
				return fmt.Errorf("--student-id is required")
			}
			if out == "" {
				out = fmt.Sprintf("student-%d-errors.xlsx", studentID)
			}
			return fnExport(cmd.Context(), cfg, newLogger(cfg, stderr), studentID, out)
		},
	}
	exportCmd.Flags().Int64Var(&studentID, "student-id", 0, "Student id")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default student-<id>-errors.xlsx)")

	root.AddCommand(serveCmd, migrateCmd, analyzeCmd, exportCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

func resolveConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	var envErr error
	if f.envFile != "" {
		envErr = config.LoadEnv(f.envFile)
	} else {
		envErr = config.LoadEnv()
	}
	if envErr != nil {
		return config.Config{}, fmt.Errorf("load env: %w", envErr)
	}

	cfg := config.Defaults()
	path := f.configPath
	if path == "" {
		path = os.Getenv("GRAMMARBOT_CONFIG")
	}
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	config.ApplyEnv(&cfg)

	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("addr", &cfg.Addr, f.addr)
	set("log-level", &cfg.LogLevel, f.logLevel)
	set("log-format", &cfg.LogFormat, f.logFormat)
	set("database-url", &cfg.Database.URL, f.dbURL)
	set("redis-addr", &cfg.Redis.Addr, f.redisAddr)
	set("backend", &cfg.Backend, f.backend)
	set("hf-base-url", &cfg.HF.BaseURL, f.hfBaseURL)
	return cfg, nil
}
