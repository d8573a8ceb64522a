package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
polling_interval: 30m
api:
  listings_url: https://vtuapi.internyet.in/api/v1/internships
  website_url: https://vtu.internyet.in/internships/
  timeout: 10s
  page_delay: 500ms
subscribers:
  csv_url: https://example.com/subscribers.csv
notification:
  type: email
  smtp_host: smtp.gmail.com
  smtp_port: 587
  sender: watcher@example.com
  password: app-password
  default_recipient: operator@example.com
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PollingInterval != 30*time.Minute {
		t.Errorf("PollingInterval = %v", cfg.PollingInterval)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.PageDelay != 500*time.Millisecond {
		t.Errorf("PageDelay = %v", cfg.API.PageDelay)
	}
	if strings.HasSuffix(cfg.API.WebsiteURL, "/") {
		t.Errorf("WebsiteURL = %q, want trailing slash trimmed", cfg.API.WebsiteURL)
	}
	// defaults
	if cfg.StateFile != "seen_internships.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_SENDER_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, strings.Replace(validConfig, "app-password", "${TEST_SENDER_PASSWORD}", 1)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.Password != "s3cret" {
		t.Errorf("Password = %q, want env expansion", cfg.Notification.Password)
	}
}

func TestLoad_MissingSMTPCredentialsFatal(t *testing.T) {
	broken := strings.Replace(validConfig, "password: app-password\n", "", 1)
	if _, err := Load(writeConfig(t, broken)); err == nil {
		t.Fatal("expected error for missing smtp password")
	}
}

func TestLoad_MissingListingsURLFatal(t *testing.T) {
	broken := strings.Replace(validConfig, "listings_url: https://vtuapi.internyet.in/api/v1/internships\n", "", 1)
	if _, err := Load(writeConfig(t, broken)); err == nil {
		t.Fatal("expected error for missing listings_url")
	}
}

func TestLoad_BadNotificationType(t *testing.T) {
	broken := strings.Replace(validConfig, "type: email", "type: carrier-pigeon", 1)
	if _, err := Load(writeConfig(t, broken)); err == nil {
		t.Fatal("expected error for unknown notification type")
	}
}

func TestLoad_LogTypeNeedsNoCredentials(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  listings_url: https://vtuapi.internyet.in/api/v1/internships
  website_url: https://vtu.internyet.in/internships
notification:
  type: log
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.DefaultRecipient == "" {
		t.Error("expected default recipient placeholder for log type")
	}
	if cfg.PollingInterval != 30*time.Minute {
		t.Errorf("PollingInterval default = %v", cfg.PollingInterval)
	}
}
