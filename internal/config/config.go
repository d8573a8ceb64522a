package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the watcher.
type Config struct {
	PollingInterval time.Duration
	API             APIConfig
	Subscribers     SubscribersConfig
	Notification    NotificationConfig
	StateFile       string
	ArchiveFile     string // empty disables the archive
	Server          ServerConfig
}

// APIConfig describes the upstream listing feed.
type APIConfig struct {
	ListingsURL string        // paginated JSON API
	WebsiteURL  string        // base for listing links built from slugs
	Timeout     time.Duration // per-request bound
	PageDelay   time.Duration // pacing between successful page fetches
}

// SubscribersConfig points at the mailing list.
type SubscribersConfig struct {
	CSVURL string `yaml:"csv_url"` // published CSV consumed by the watcher
	File   string `yaml:"file"`    // local CSV owned by the subscribe API
}

// NotificationConfig selects and configures the delivery channel.
type NotificationConfig struct {
	Type             string `yaml:"type"` // "email" or "log"
	SMTPHost         string `yaml:"smtp_host"`
	SMTPPort         int    `yaml:"smtp_port"`
	Sender           string `yaml:"sender"`
	Password         string `yaml:"password"`
	DefaultRecipient string `yaml:"default_recipient"`
}

// ServerConfig holds the subscription API listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	PollingInterval string             `yaml:"polling_interval"`
	API             rawAPIConfig       `yaml:"api"`
	Subscribers     SubscribersConfig  `yaml:"subscribers"`
	Notification    NotificationConfig `yaml:"notification"`
	StateFile       string             `yaml:"state_file"`
	ArchiveFile     string             `yaml:"archive_file"`
	Server          ServerConfig       `yaml:"server"`
}

type rawAPIConfig struct {
	ListingsURL string `yaml:"listings_url"`
	WebsiteURL  string `yaml:"website_url"`
	Timeout     string `yaml:"timeout"`
	PageDelay   string `yaml:"page_delay"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables (so secrets stay out of the file), applies defaults, and
// validates. Validation failures are fatal by design: the watcher never runs
// half-configured.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 30 * time.Minute
	if raw.PollingInterval != "" {
		interval, err = time.ParseDuration(raw.PollingInterval)
		if err != nil {
			return nil, fmt.Errorf("parse polling_interval %q: %w", raw.PollingInterval, err)
		}
	}

	timeout := 30 * time.Second
	if raw.API.Timeout != "" {
		timeout, err = time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse api.timeout %q: %w", raw.API.Timeout, err)
		}
	}

	pageDelay := 1 * time.Second
	if raw.API.PageDelay != "" {
		pageDelay, err = time.ParseDuration(raw.API.PageDelay)
		if err != nil {
			return nil, fmt.Errorf("parse api.page_delay %q: %w", raw.API.PageDelay, err)
		}
	}

	cfg := &Config{
		PollingInterval: interval,
		API: APIConfig{
			ListingsURL: raw.API.ListingsURL,
			WebsiteURL:  strings.TrimRight(raw.API.WebsiteURL, "/"),
			Timeout:     timeout,
			PageDelay:   pageDelay,
		},
		Subscribers:  raw.Subscribers,
		Notification: raw.Notification,
		StateFile:    raw.StateFile,
		ArchiveFile:  raw.ArchiveFile,
		Server:       raw.Server,
	}

	if cfg.Notification.Type == "" {
		cfg.Notification.Type = "email"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "seen_internships.json"
	}
	if cfg.Subscribers.File == "" {
		cfg.Subscribers.File = "subscribers.csv"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Notification.SMTPPort == 0 {
		cfg.Notification.SMTPPort = 587
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be positive, got %v", cfg.PollingInterval)
	}

	if cfg.API.ListingsURL == "" {
		return fmt.Errorf("api.listings_url is required")
	}
	if u, err := url.Parse(cfg.API.ListingsURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.listings_url %q is not an absolute URL", cfg.API.ListingsURL)
	}
	if cfg.API.WebsiteURL == "" {
		return fmt.Errorf("api.website_url is required")
	}

	switch cfg.Notification.Type {
	case "email":
		if cfg.Notification.SMTPHost == "" {
			return fmt.Errorf("notification.smtp_host is required when type is \"email\"")
		}
		if cfg.Notification.Sender == "" {
			return fmt.Errorf("notification.sender is required when type is \"email\"")
		}
		if cfg.Notification.Password == "" {
			return fmt.Errorf("notification.password is required when type is \"email\"")
		}
		if cfg.Notification.DefaultRecipient == "" {
			return fmt.Errorf("notification.default_recipient is required when type is \"email\"")
		}
	case "log":
		if cfg.Notification.DefaultRecipient == "" {
			cfg.Notification.DefaultRecipient = "operator@localhost"
		}
	default:
		return fmt.Errorf("notification.type must be \"email\" or \"log\", got %q", cfg.Notification.Type)
	}

	return nil
}
