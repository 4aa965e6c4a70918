package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/app"
	"github.com/abhisek/testlab/internal/coach"
	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/llm"
	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// level 1-3 jumps straight into that level.
func runApp(cmd *cobra.Command, level int) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, true)
	defer logger.Sync() //nolint:errcheck

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	var (
		progressStore progress.Store
		eventRepo     store.EventRepo
	)
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		progressStore = progress.NewKVStore(st.ProgressRepo(), logger)
		eventRepo = st.EventRepo()
	}

	// The coach falls back to rule-based feedback without a provider.
	var provider llm.Provider
	if llmCfg, ok := llm.FromSettings(cfg.LLM); ok {
		provider, err = llm.NewProvider(ctx, llmCfg, eventRepo, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Coach feedback will be rule-based.")
			provider = nil
		}
	}

	notices := app.NewNotices()
	l := lab.New(lab.Options{
		Seed:        cfg.Lab.Seed,
		Store:       progressStore,
		Notifier:    notices,
		Events:      eventRepo,
		Coach:       coach.New(provider, coach.DefaultConfig(), logger),
		Logger:      logger,
		TestSetRows: cfg.Lab.TestSetRows,
	})
	logger.Info("session started",
		zap.String("session", l.SessionID()),
		zap.Bool("persistent", dbPath != ""),
		zap.Bool("llm_coach", provider != nil))

	return app.Run(app.Options{
		Lab:            l,
		Notices:        notices,
		Events:         eventRepo,
		AdvanceDelay:   cfg.Lab.AdvanceDelay,
		NoticeDuration: cfg.Lab.NoticeDuration,
		StartLevel:     level,
		Intro:          level == 0 && l.Progress().XP() == 0,
	})
}
