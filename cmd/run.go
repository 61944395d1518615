package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/app"
	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/config"
	"github.com/Simi-mac/educafin/internal/diary"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/logging"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/store"
)

// deps holds what every command needs: resolved config, the file logger
// and the open store.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup resolves the configuration from the persistent flags and opens
// the logger and the store.
func setup(cmd *cobra.Command) (*deps, error) {
	flags := cmd.Flags()
	opts := config.Options{}
	opts.DBPath, _ = flags.GetString("db")
	opts.ConfigFile, _ = flags.GetString("config")
	opts.EnvFile, _ = flags.GetString("env-file")
	opts.Provider, _ = flags.GetString("provider")
	opts.LogLevel, _ = flags.GetString("log-level")

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger = logging.Nop()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Sync() //nolint:errcheck
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("configuration loaded",
		zap.String("config_file", cfg.ConfigFile),
		zap.String("db", cfg.DBPath),
		zap.String("provider", cfg.LLM.Provider))
	return &deps{cfg: cfg, logger: logger, store: st}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", zap.Error(err))
	}
	d.logger.Sync() //nolint:errcheck
}

// coach connects the generation service. Missing credentials are
// reported per request, not here.
func (d *deps) coach(ctx context.Context) *coach.Service {
	return coach.Connect(ctx, d.cfg.LLM, coach.DefaultConfig(), d.store.EventRepo(), d.logger)
}

// questions loads the configured question set or the embedded one.
func (d *deps) questions() (*assessment.QuestionSet, error) {
	if d.cfg.QuestionsFile == "" {
		return assessment.Default(), nil
	}
	f, err := os.Open(d.cfg.QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()
	qs, err := assessment.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load questions %s: %w", d.cfg.QuestionsFile, err)
	}
	return qs, nil
}

// requestTimeout bounds one generation request including its retries.
func (d *deps) requestTimeout() time.Duration {
	if d.cfg.LLM.Timeout <= 0 {
		return 0
	}
	attempts := max(d.cfg.LLM.Retry.MaxAttempts, 1)
	return time.Duration(attempts)*d.cfg.LLM.Timeout + 5*time.Second
}

// runApp opens the store, restores the journey and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	qs, err := d.questions()
	if err != nil {
		return err
	}
	j, err := journey.Load(ctx, d.store.SnapshotRepo())
	if err != nil {
		d.logger.Warn("starting a new journey", zap.Error(err))
		j = journey.New()
	}

	svc := d.coach(ctx)
	if !svc.Ready() {
		fmt.Fprintln(os.Stderr, "Assistente não configurado: defina uma chave de API para usar a trilha personalizada e o chat.")
	}

	skipWelcome, _ := cmd.Flags().GetBool("skip-welcome")
	d.logger.Info("starting tui", zap.String("stage", j.Stage().String()))
	return app.Run(ctx, app.Options{
		Env: &screen.Env{
			Journey:        j,
			Questions:      qs,
			Coach:          svc,
			Diary:          diary.New(d.store.ExpenseRepo()),
			Logger:         d.logger,
			RequestTimeout: d.requestTimeout(),
		},
		SnapshotRepo: d.store.SnapshotRepo(),
		SkipWelcome:  skipWelcome,
	})
}
