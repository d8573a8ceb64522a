package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/model"
	"github.com/Monika-msk/vtu-internyet/internal/notifier"
	"github.com/Monika-msk/vtu-internyet/internal/seenstate"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one check cycle and exit",
	Long:  "Fetches all pages, detects new listings, notifies subscribers, persists state, then exits.",
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log instead of sending mail, and do not persist state")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mailer := setupMailer(cfg, logger)
	var store model.SeenStore = newFileStore(cfg, logger)
	if dryRun {
		logger.Info("dry-run mode: mail is logged, state is not persisted")
		mailer = notifier.NewLogMailer(logger)
		store = seenstate.NewReadOnly(store)
	}

	w, closeArchive, err := buildWatcher(cfg, mailer, store, logger)
	if err != nil {
		logger.Error("failed to build watcher", "error", err)
		os.Exit(1)
	}
	defer closeArchive()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := w.Run(ctx)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete",
		"pages", report.Pages,
		"fetched", report.Fetched,
		"new", report.New,
		"sent", report.Sent,
		"recipients", report.Recipients,
		"persisted", report.Persisted,
	)
	return nil
}
