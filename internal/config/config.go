package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Backend  BackendConfig  `yaml:"backend"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Watcher  WatcherConfig  `yaml:"watcher"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port         int     `yaml:"port"`
	MetricsPort  int     `yaml:"metrics_port"`
	AdminToken   string  `yaml:"admin_token"`
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type BackendConfig struct {
	URL       string `yaml:"url"`
	Token     string `yaml:"token"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type ScoringConfig struct {
	WeightTolerance float64             `yaml:"weight_tolerance"`
	ReconcileMode   string              `yaml:"reconcile_mode"`
	Classification  scoring.ClassPolicy `yaml:"classification"`
}

type WatcherConfig struct {
	IntervalMs int     `yaml:"interval_ms"`
	Projects   []int64 `yaml:"projects"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutMs) * time.Millisecond
}

func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Watcher.IntervalMs) * time.Millisecond
}

// Mode returns the configured reconcile mode. Validate has already rejected
// unknown values.
func (c *Config) Mode() scoring.Mode {
	m, _ := scoring.ParseMode(c.Scoring.ReconcileMode, scoring.ModeFallbackToAny)
	return m
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8700,
			MetricsPort:  8701,
			RateLimitRPS: 10,
			RateBurst:    20,
		},
		Backend: BackendConfig{
			URL:       "http://localhost:8080/api",
			TimeoutMs: 10000,
		},
		Scoring: ScoringConfig{
			WeightTolerance: scoring.DefaultTolerance,
			ReconcileMode:   string(scoring.ModeFallbackToAny),
			Classification:  scoring.DefaultClassPolicy(),
		},
		Watcher: WatcherConfig{
			IntervalMs: 30000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Backend.URL == "" {
		errs = append(errs, errors.New("backend.url is required"))
	}
	if c.Scoring.WeightTolerance <= 0 || c.Scoring.WeightTolerance >= 1 {
		errs = append(errs, fmt.Errorf("scoring.weight_tolerance must be in (0, 1), got %g", c.Scoring.WeightTolerance))
	}
	if _, err := scoring.ParseMode(c.Scoring.ReconcileMode, scoring.ModeFallbackToAny); err != nil {
		errs = append(errs, fmt.Errorf("scoring.reconcile_mode: %w", err))
	}
	if c.Scoring.Classification.Accepted < 0 || c.Scoring.Classification.Interview < 0 {
		errs = append(errs, errors.New("scoring.classification counts must not be negative"))
	}
	if len(c.Watcher.Projects) > 0 && c.Watcher.IntervalMs <= 0 {
		errs = append(errs, errors.New("watcher.interval_ms must be positive when projects are watched"))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GDSS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("GDSS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("GDSS_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("GDSS_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimitRPS = f
		}
	}
	if v := os.Getenv("GDSS_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("GDSS_NATS_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("GDSS_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("GDSS_BACKEND_TOKEN"); v != "" {
		cfg.Backend.Token = v
	}
	if v := os.Getenv("GDSS_WEIGHT_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.WeightTolerance = f
		}
	}
	if v := os.Getenv("GDSS_RECONCILE_MODE"); v != "" {
		cfg.Scoring.ReconcileMode = v
	}
	if v := os.Getenv("GDSS_WATCH_PROJECTS"); v != "" {
		cfg.Watcher.Projects = parseIDs(v)
	}
	if v := os.Getenv("GDSS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// parseIDs reads a comma separated id list, skipping entries that are not
// integers.
func parseIDs(v string) []int64 {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
