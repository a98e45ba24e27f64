package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("TRACKER_URL", "")
	t.Setenv("TRACKER_API_KEY", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tracker.CacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache TTL default, got %v", cfg.Tracker.CacheTTL)
	}
	if cfg.Tracker.BatchSize != 80 {
		t.Errorf("expected batch size 80, got %d", cfg.Tracker.BatchSize)
	}
	if cfg.Tracker.BatchDelay != time.Second {
		t.Errorf("expected 1s batch delay, got %v", cfg.Tracker.BatchDelay)
	}
	if cfg.Transitions.CodeReview.First != 7 || cfg.Transitions.CodeReview.Second != 16 {
		t.Errorf("unexpected code-review rule %+v", cfg.Transitions.CodeReview)
	}
	if cfg.Transitions.Review.First != 2 || cfg.Transitions.Review.Second != 11 {
		t.Errorf("unexpected review rule %+v", cfg.Transitions.Review)
	}
	if cfg.Output.Directory != "reports" {
		t.Errorf("expected default output dir, got %q", cfg.Output.Directory)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("TRACKER_URL", "https://tracker.example.com")
	t.Setenv("TRACKER_API_KEY", "secret")
	t.Setenv("TRACKER_CACHE_TTL", "90s")
	t.Setenv("TRACKER_BATCH_SIZE", "25")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tracker.BaseURL != "https://tracker.example.com" {
		t.Errorf("unexpected base URL %q", cfg.Tracker.BaseURL)
	}
	if cfg.Tracker.CacheTTL != 90*time.Second {
		t.Errorf("expected 90s TTL, got %v", cfg.Tracker.CacheTTL)
	}
	if cfg.Tracker.BatchSize != 25 {
		t.Errorf("expected batch size 25, got %d", cfg.Tracker.BatchSize)
	}
}

func TestLoadFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("TRACKER_CACHE_TTL", "soon")
	t.Setenv("TRACKER_BATCH_SIZE", "many")

	cfg, _ := LoadFromEnv()
	if cfg.Tracker.CacheTTL != 5*time.Minute {
		t.Errorf("bad duration must fall back to default, got %v", cfg.Tracker.CacheTTL)
	}
	if cfg.Tracker.BatchSize != 80 {
		t.Errorf("bad int must fall back to default, got %d", cfg.Tracker.BatchSize)
	}
}

func TestMergeFileOverlays(t *testing.T) {
	t.Setenv("TRACKER_URL", "https://env.example.com")
	t.Setenv("TRACKER_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tracker:
  base_url: https://file.example.com
  project: Platform
transitions:
  code_review:
    first: 3
    second: 9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _ := LoadFromEnv()
	if err := cfg.MergeFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tracker.BaseURL != "https://file.example.com" {
		t.Errorf("file must override env, got %q", cfg.Tracker.BaseURL)
	}
	if cfg.Tracker.APIKey != "env-key" {
		t.Errorf("fields absent from the file must survive, got %q", cfg.Tracker.APIKey)
	}
	if cfg.Tracker.Project != "Platform" {
		t.Errorf("unexpected project %q", cfg.Tracker.Project)
	}
	if cfg.Transitions.CodeReview.First != 3 || cfg.Transitions.CodeReview.Second != 9 {
		t.Errorf("file must override transition rules, got %+v", cfg.Transitions.CodeReview)
	}
}

func TestMergeFileMissing(t *testing.T) {
	cfg, _ := LoadFromEnv()
	if err := cfg.MergeFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadFromEnv()
	cfg.Tracker.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without base URL")
	}

	cfg.Tracker.BaseURL = "https://tracker.example.com"
	cfg.Tracker.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without API key")
	}

	cfg.Tracker.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Transitions.Review.Second = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for incomplete transition rule")
	}
}
