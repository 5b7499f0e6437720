package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredentials means API credentials were not supplied via the
// config file or the environment. The pipeline refuses to start on it.
var ErrMissingCredentials = errors.New("missing API credentials")

// Config is the application's configuration model.
// It captures the source account, credentials, crawl pacing, cleaning
// constants, and output locations.
type Config struct {
	Account     AccountConfig     `yaml:"account"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Scrape      ScrapeConfig      `yaml:"scrape"`
	Clean       CleanConfig       `yaml:"clean"`
	Output      OutputConfig      `yaml:"output"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type AccountConfig struct {
	// Handle of the account whose timeline is ingested.
	Username string `yaml:"username"`
}

type CredentialsConfig struct {
	// OAuth 1.0a credentials for the v1.1 timeline endpoint.
	// Empty fields fall back to X_CONSUMER_KEY, X_CONSUMER_SECRET,
	// X_ACCESS_TOKEN, X_ACCESS_SECRET.
	ConsumerKey    string `yaml:"consumerKey"`
	ConsumerSecret string `yaml:"consumerSecret"`
	AccessToken    string `yaml:"accessToken"`
	AccessSecret   string `yaml:"accessSecret"`
}

type FetchConfig struct {
	// MaxTweets caps the timeline walk; 3200 is the platform's
	// historical limit for one user timeline.
	MaxTweets int `yaml:"maxTweets"`
	// PageSize per timeline request, capped at 200 by the API.
	PageSize int     `yaml:"pageSize"`
	RPS      float64 `yaml:"rps"`
	Burst    int     `yaml:"burst"`
}

type ScrapeConfig struct {
	// Deliberately slow defaults. The crawl is sequential and
	// rate-considerate toward the scraped server.
	RPS            float64 `yaml:"rps"`
	Burst          int     `yaml:"burst"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	UserAgent      string  `yaml:"userAgent"`
}

type CleanConfig struct {
	// Hashtag token stripped from title tails alongside the post URL.
	Hashtag string `yaml:"hashtag"`
	// Author names longer than NameLimit are truncated for display.
	NameLimit int `yaml:"nameLimit"`
}

type OutputConfig struct {
	CSVPath string `yaml:"csvPath"`
	DBPath  string `yaml:"dbPath"`
}

type MetricsConfig struct {
	// Addr enables the /metrics and /health server when non-empty,
	// e.g. ":9090". Falls back to METRICS_ADDR.
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Account: AccountConfig{Username: "Rbloggers"},
		Fetch:   FetchConfig{MaxTweets: 3200, PageSize: 200, RPS: 1, Burst: 3},
		Scrape: ScrapeConfig{
			RPS:            0.5,
			Burst:          1,
			TimeoutSeconds: 15,
			UserAgent:      "blogpulse/1.0",
		},
		Clean:  CleanConfig{Hashtag: "#rstats", NameLimit: 25},
		Output: OutputConfig{CSVPath: "./posts.csv", DBPath: "./blogpulse.db"},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.ConsumerKey == "" {
		c.Credentials.ConsumerKey = os.Getenv("X_CONSUMER_KEY")
	}
	if c.Credentials.ConsumerSecret == "" {
		c.Credentials.ConsumerSecret = os.Getenv("X_CONSUMER_SECRET")
	}
	if c.Credentials.AccessToken == "" {
		c.Credentials.AccessToken = os.Getenv("X_ACCESS_TOKEN")
	}
	if c.Credentials.AccessSecret == "" {
		c.Credentials.AccessSecret = os.Getenv("X_ACCESS_SECRET")
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
}

// Validate checks the parts of the config the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Account.Username == "" {
		return errors.New("account.username is required")
	}
	cr := c.Credentials
	if cr.ConsumerKey == "" || cr.ConsumerSecret == "" || cr.AccessToken == "" || cr.AccessSecret == "" {
		return ErrMissingCredentials
	}
	if c.Output.CSVPath == "" || c.Output.DBPath == "" {
		return errors.New("output paths are required")
	}
	return nil
}

// Load reads YAML config from path and resolves env fallbacks.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
