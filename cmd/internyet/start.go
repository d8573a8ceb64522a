package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the watcher daemon",
	Long:  "Runs a check immediately, then on the configured interval; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.PollingInterval.String(),
		"listings_url", cfg.API.ListingsURL,
		"state_file", cfg.StateFile,
		"notification", cfg.Notification.Type,
	)

	mailer := setupMailer(cfg, logger)
	w, closeArchive, err := buildWatcher(cfg, mailer, newFileStore(cfg, logger), logger)
	if err != nil {
		logger.Error("failed to build watcher", "error", err)
		os.Exit(1)
	}
	defer closeArchive()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func(ctx context.Context) error {
		report, err := w.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("check complete",
			"pages", report.Pages,
			"fetched", report.Fetched,
			"new", report.New,
			"sent", report.Sent,
			"recipients", report.Recipients,
		)
		return nil
	}

	sched := scheduler.New(job, cfg.PollingInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
