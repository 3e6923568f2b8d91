package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	client "github.com/hsn0918/analytics-client"
)

const (
	envPrefix         = "ANALYTICS_"
	configPathEnvVar  = envPrefix + "CONFIG"
	defaultFailLog    = "fail.log"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultRateBurst  = 1
	defaultConcurrent = 3
)

// Config is the CLI configuration. Values are layered: defaults, then the YAML file,
// then ANALYTICS_* environment variables, then flags set on the command line.
type Config struct {
	BaseURL           string        `koanf:"base_url"`
	Token             string        `koanf:"token"`
	Timeout           time.Duration `koanf:"timeout"`
	PollInterval      time.Duration `koanf:"poll_interval"`
	ProcessingTimeout time.Duration `koanf:"processing_timeout"`
	FailLog           string        `koanf:"fail_log"`
	LogLevel          string        `koanf:"log_level"`
	LogFormat         string        `koanf:"log_format"`
	RateLimit         float64       `koanf:"rate_limit"`
	RateBurst         int           `koanf:"rate_burst"`
	MetricsFile       string        `koanf:"metrics_file"`
}

func defaultConfig() *Config {
	return &Config{
		BaseURL:           client.DefaultBaseURL,
		Timeout:           client.DefaultTimeout,
		PollInterval:      client.DefaultPollInterval,
		ProcessingTimeout: client.ProcessingTimeout,
		FailLog:           defaultFailLog,
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
		RateBurst:         defaultRateBurst,
	}
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"base-url":           "base_url",
	"token":              "token",
	"timeout":            "timeout",
	"poll-interval":      "poll_interval",
	"processing-timeout": "processing_timeout",
	"fail-log":           "fail_log",
	"log-level":          "log_level",
	"log-format":         "log_format",
	"rate-limit":         "rate_limit",
	"rate-burst":         "rate_burst",
	"metrics-file":       "metrics_file",
}

// loadConfig builds the configuration. An empty path skips the config file; flags may be nil.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		var setErr error
		flags.Visit(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || setErr != nil {
				return
			}
			setErr = k.Set(key, f.Value.String())
		})
		if setErr != nil {
			return nil, fmt.Errorf("apply flags: %w", setErr)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envKey maps ANALYTICS_POLL_INTERVAL to poll_interval.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if key == "config" {
		return ""
	}
	return key
}

// Validate checks the configuration before any request is made.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be > 0")
	}
	if c.ProcessingTimeout < 0 {
		return errors.New("processing_timeout must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	return nil
}
