package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/adapter"
	"github.com/Monika-msk/vtu-internyet/internal/notifier"
	"github.com/Monika-msk/vtu-internyet/internal/subscribers"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify config and connectivity, exit",
	Long:  "Self-check: loads the config, fetches one listing page, fetches the subscribers CSV, and dials the SMTP relay. Sends no mail and writes no state.",
	RunE:  runSelfCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runSelfCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Info("config ok", "path", cfgPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	failed := 0
	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	fetcher := adapter.NewInternyetAdapter(cfg.API.ListingsURL, httpClient)
	if page, err := fetcher.FetchPage(ctx, 1); err != nil {
		logger.Error("listing api check failed", "error", err)
		failed++
	} else {
		logger.Info("listing api ok", "page_items", len(page.Items), "total", page.Total)
	}

	if cfg.Subscribers.CSVURL != "" {
		source := subscribers.NewHTTPSource(cfg.Subscribers.CSVURL, httpClient, logger)
		if subs, err := source.Subscribers(ctx); err != nil {
			logger.Error("subscribers csv check failed", "error", err)
			failed++
		} else {
			logger.Info("subscribers csv ok", "count", len(subs))
		}
	} else {
		logger.Warn("no subscribers csv configured, notifications go to the default recipient only")
	}

	if cfg.Notification.Type == "email" {
		mailer := notifier.NewSMTPMailer(
			cfg.Notification.SMTPHost,
			cfg.Notification.SMTPPort,
			cfg.Notification.Sender,
			cfg.Notification.Password,
		)
		if err := mailer.Verify(); err != nil {
			logger.Error("smtp relay check failed", "error", err)
			failed++
		} else {
			logger.Info("smtp relay ok", "host", cfg.Notification.SMTPHost)
		}
	}

	state := newFileStore(cfg, logger).Load()
	logger.Info("seen state ok", "path", cfg.StateFile, "seen", state.Len())

	if failed > 0 {
		logger.Error("check failed", "failures", failed)
		os.Exit(1)
	}
	logger.Info("all checks passed")
	return nil
}
