// Package config provides YAML-based configuration loading for Edifice.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Edifice configuration, loaded from edifice.yaml.
// Store settings may be absent; the process still starts and serves, with
// every data operation failing until the store is configured.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Invite InviteConfig `yaml:"invite"`
	Slack  SlackConfig  `yaml:"slack"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

// StoreConfig holds connection settings for the relational store.
type StoreConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port          int `yaml:"port"`
	FunctionsPort int `yaml:"functions_port"`
}

// AuthConfig holds the bearer-token signing secret.
type AuthConfig struct {
	Secret string `yaml:"secret"`
}

// InviteConfig controls invitation links issued by the invite function.
type InviteConfig struct {
	BaseURL    string `yaml:"base_url"`
	ExpiryDays int    `yaml:"expiry_days"`
}

// SlackConfig holds the webhook for best-effort notifications.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// SweepConfig schedules the periodic completion recompute.
type SweepConfig struct {
	Schedule string `yaml:"schedule"` // 5-field cron expression; empty disables
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: configuration then comes entirely from
// environment variables and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data = nil
	} else if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config with environment
// overrides applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values from EDIFICE_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Store.Host, "EDIFICE_DB_HOST")
	setInt(&c.Store.Port, "EDIFICE_DB_PORT")
	setString(&c.Store.User, "EDIFICE_DB_USER")
	setString(&c.Store.Password, "EDIFICE_DB_PASSWORD")
	setString(&c.Store.Database, "EDIFICE_DB_NAME")
	setInt(&c.Server.Port, "EDIFICE_SERVER_PORT")
	setInt(&c.Server.FunctionsPort, "EDIFICE_FUNCTIONS_PORT")
	setString(&c.Auth.Secret, "EDIFICE_JWT_SECRET")
	setString(&c.Invite.BaseURL, "EDIFICE_INVITE_BASE_URL")
	setString(&c.Slack.WebhookURL, "EDIFICE_SLACK_WEBHOOK")
	setString(&c.Sweep.Schedule, "EDIFICE_SWEEP_SCHEDULE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Store.Port == 0 {
		c.Store.Port = 3306
	}
	if c.Store.User == "" {
		c.Store.User = "root"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.FunctionsPort == 0 {
		c.Server.FunctionsPort = 8081
	}
	if c.Invite.BaseURL == "" {
		c.Invite.BaseURL = "http://localhost:3000/invite"
	}
	if c.Invite.ExpiryDays == 0 {
		c.Invite.ExpiryDays = 7
	}
}

// validate checks that present fields are consistent. Store settings are
// deliberately not required here; an unconfigured store degrades at open
// instead of failing startup.
func (c *Config) validate() error {
	var errs []string
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.FunctionsPort < 1 || c.Server.FunctionsPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.functions_port %d out of range", c.Server.FunctionsPort))
	}
	if c.Invite.ExpiryDays < 0 {
		errs = append(errs, "invite.expiry_days must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// StoreConfigured reports whether the minimum store settings are present.
func (c *Config) StoreConfigured() bool {
	return c.Store.Host != "" && c.Store.Database != ""
}
