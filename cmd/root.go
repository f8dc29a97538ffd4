package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/config"
	"github.com/logiclue/logiclue/internal/llm"
	"github.com/logiclue/logiclue/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "logiclue",
	Short: "Explain LSAT logical reasoning answers",
	Long: `LogiClue classifies LSAT logical reasoning questions, asks an LLM for a
structured explanation of the correct answer and of the student's mistake,
and tracks practice attempts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newProvider is swapped out in tests.
var newProvider = llm.NewProvider

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./logiclue.yaml or ~/.config/logiclue/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides store.dsn and LOGICLUE_DB)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the --db flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
		cfg.Store.Driver = store.DriverSQLite
		cfg.Store.DSN = p
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return config.Logger(cfg.Log, os.Stderr)
}

// openStore opens the configured database.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	sc, err := cfg.StoreConfig()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// app bundles what the LLM-backed commands need.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	svc    *analysis.Service
}

func (a *app) Close() error { return a.store.Close() }

// newApp loads config, validates it, opens the store and wires the
// analysis service.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	svc := analysis.NewService(provider, analysis.Repos{
		Analyses: st.AnalysisRepo(),
		Attempts: st.AttemptRepo(),
		DB:       st,
	}, cfg.Analysis, logger)

	return &app{cfg: cfg, logger: logger, store: st, svc: svc}, nil
}

// withStore runs fn against the configured database without an LLM.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
