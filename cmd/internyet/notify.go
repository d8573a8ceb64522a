package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Monika-msk/vtu-internyet/internal/notifier"
	"github.com/Monika-msk/vtu-internyet/internal/render"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a dummy listing to the default recipient using the configured mailer.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mailer := setupMailer(cfg, logger)
	renderer := render.New(cfg.API.WebsiteURL)

	if err := notifier.SendTestMessage(mailer, renderer, cfg.Notification.DefaultRecipient); err != nil {
		logger.Error("test notification failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test notification sent", "to", cfg.Notification.DefaultRecipient)
	return nil
}
