package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tracker     TrackerConfig     `yaml:"tracker"`
	Output      OutputConfig      `yaml:"output"`
	Transitions TransitionsConfig `yaml:"transitions"`
	Author      string            `yaml:"author"`
}

type TrackerConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Project    string        `yaml:"project"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	PageSize   int           `yaml:"page_size"`
	BatchSize  int           `yaml:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay"`
}

type OutputConfig struct {
	Directory string   `yaml:"directory"`
	Format    []string `yaml:"format"` // json, html, csv, excel
}

// TransitionRule is a two-checkpoint status transition. The numeric ids are
// specific to one tracker deployment's workflow, which is why they live in
// configuration instead of code.
type TransitionRule struct {
	First  int `yaml:"first"`
	Second int `yaml:"second"`
}

type TransitionsConfig struct {
	CodeReview TransitionRule `yaml:"code_review"`
	Review     TransitionRule `yaml:"review"`
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Tracker: TrackerConfig{
			BaseURL:    os.Getenv("TRACKER_URL"),
			APIKey:     os.Getenv("TRACKER_API_KEY"),
			Project:    os.Getenv("TRACKER_PROJECT"),
			CacheTTL:   durationEnv("TRACKER_CACHE_TTL", 5*time.Minute),
			PageSize:   intEnv("TRACKER_PAGE_SIZE", 100),
			BatchSize:  intEnv("TRACKER_BATCH_SIZE", 80),
			BatchDelay: durationEnv("TRACKER_BATCH_DELAY", time.Second),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "reports"),
			Format:    strings.Split(getEnvOrDefault("OUTPUT_FORMAT", "json,html"), ","),
		},
		Transitions: TransitionsConfig{
			CodeReview: TransitionRule{First: 7, Second: 16},
			Review:     TransitionRule{First: 2, Second: 11},
		},
		Author: os.Getenv("REPORT_AUTHOR"),
	}

	return cfg, nil
}

// MergeFile overlays a YAML config file on top of the env-derived values.
// Only fields present in the file override.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Tracker.BaseURL == "" {
		return fmt.Errorf("tracker base URL not configured (set TRACKER_URL)")
	}
	if c.Tracker.APIKey == "" {
		return fmt.Errorf("tracker API key not configured (set TRACKER_API_KEY)")
	}
	if c.Transitions.CodeReview.First == 0 || c.Transitions.CodeReview.Second == 0 {
		return fmt.Errorf("code_review transition rule is incomplete")
	}
	if c.Transitions.Review.First == 0 || c.Transitions.Review.Second == 0 {
		return fmt.Errorf("review transition rule is incomplete")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
