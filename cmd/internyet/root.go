package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/adapter"
	"github.com/Monika-msk/vtu-internyet/internal/archive"
	"github.com/Monika-msk/vtu-internyet/internal/config"
	"github.com/Monika-msk/vtu-internyet/internal/model"
	"github.com/Monika-msk/vtu-internyet/internal/normalize"
	"github.com/Monika-msk/vtu-internyet/internal/notifier"
	"github.com/Monika-msk/vtu-internyet/internal/render"
	"github.com/Monika-msk/vtu-internyet/internal/seenstate"
	"github.com/Monika-msk/vtu-internyet/internal/subscribers"
	"github.com/Monika-msk/vtu-internyet/internal/watcher"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "internyet",
	Short: "VTU internship watcher — never miss a new listing",
	Long:  "Internyet polls the VTU Internyet listing API and emails subscribers about new internships.",
	// Default to `start` so that `internyet` with no args runs the daemon.
	RunE: runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: INTERNYET_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > INTERNYET_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("INTERNYET_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupMailer(cfg *config.Config, logger *slog.Logger) model.Mailer {
	switch cfg.Notification.Type {
	case "email":
		logger.Info("using smtp mailer",
			"host", cfg.Notification.SMTPHost,
			"port", cfg.Notification.SMTPPort,
			"sender", cfg.Notification.Sender,
		)
		return notifier.NewSMTPMailer(
			cfg.Notification.SMTPHost,
			cfg.Notification.SMTPPort,
			cfg.Notification.Sender,
			cfg.Notification.Password,
		)
	default:
		return notifier.NewLogMailer(logger)
	}
}

// buildWatcher wires one watcher from config. The returned closer releases the
// archive handle (nil when no archive is configured).
func buildWatcher(cfg *config.Config, mailer model.Mailer, store model.SeenStore, logger *slog.Logger) (*watcher.Watcher, func(), error) {
	httpClient := &http.Client{Timeout: cfg.API.Timeout}

	var recorder watcher.Recorder
	closer := func() {}
	if cfg.ArchiveFile != "" {
		arch, err := archive.Open(cfg.ArchiveFile)
		if err != nil {
			return nil, nil, err
		}
		recorder = arch
		closer = func() { arch.Close() }
	}

	w := watcher.New(
		adapter.NewInternyetAdapter(cfg.API.ListingsURL, httpClient),
		normalize.New(cfg.API.WebsiteURL),
		store,
		render.New(cfg.API.WebsiteURL),
		notifier.NewDispatcher(mailer, cfg.Notification.DefaultRecipient, logger),
		subscribers.NewHTTPSource(cfg.Subscribers.CSVURL, httpClient, logger),
		recorder,
		cfg.API.PageDelay,
		logger,
	)
	return w, closer, nil
}

func newFileStore(cfg *config.Config, logger *slog.Logger) model.SeenStore {
	return seenstate.NewFileStore(cfg.StateFile, logger)
}
