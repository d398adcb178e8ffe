package cfg

import (
	"strings"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	original := Version
	defer func() { Version = original }()

	Version = ""
	if GetVersion() != "unknown" {
		t.Errorf("Expected 'unknown' for empty version, got '%s'", GetVersion())
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(nil, flags.HelpFlag)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SourcesFile != "./feeds/sources.yml" {
		t.Errorf("Expected sources file './feeds/sources.yml', got '%s'", cfg.SourcesFile)
	}
	if cfg.FetchTimeout != 8*time.Second {
		t.Errorf("Expected fetch timeout 8s, got %s", cfg.FetchTimeout)
	}
	if cfg.FetchConcurrency != 8 {
		t.Errorf("Expected fetch concurrency 8, got %d", cfg.FetchConcurrency)
	}
	if cfg.FetchAttempts != 2 {
		t.Errorf("Expected 2 fetch attempts, got %d", cfg.FetchAttempts)
	}
	if cfg.HostInterval != 200*time.Millisecond {
		t.Errorf("Expected host interval 200ms, got %s", cfg.HostInterval)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Errorf("Expected cache TTL 300s, got %s", cfg.CacheTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected no Redis URL, got '%s'", cfg.RedisURL)
	}
	if cfg.WarmCache {
		t.Error("Expected cache warming to be off by default")
	}
	if cfg.SchedulerInterval != 240 {
		t.Errorf("Expected scheduler interval 240, got %d", cfg.SchedulerInterval)
	}
	if cfg.MaxNewsArticles != 50 {
		t.Errorf("Expected max news articles 50, got %d", cfg.MaxNewsArticles)
	}
	if cfg.MinFiltered != 3 {
		t.Errorf("Expected min filtered 3, got %d", cfg.MinFiltered)
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestParse_Flags(t *testing.T) {
	args := []string{
		"--port", "9090",
		"--fetch-timeout", "3s",
		"--host-interval", "0",
		"--cache-ttl", "60",
		"--redis-url", "redis://localhost:6379/1",
		"--warm-cache",
		"--debug",
	}

	cfg, err := parse(args, flags.HelpFlag)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("Expected fetch timeout 3s, got %s", cfg.FetchTimeout)
	}
	if cfg.HostInterval != 0 {
		t.Errorf("Expected host interval 0, got %s", cfg.HostInterval)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("Expected cache TTL 1m, got %s", cfg.CacheTTL)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Unexpected Redis URL '%s'", cfg.RedisURL)
	}
	if !cfg.WarmCache || !cfg.Debug {
		t.Error("Expected warm-cache and debug to be enabled")
	}
}

func TestParse_Env(t *testing.T) {
	t.Setenv("MAX_NEWS_ARTICLES", "20")
	t.Setenv("USER_AGENT", "Dashboard/2.0")

	cfg, err := parse(nil, flags.HelpFlag)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.MaxNewsArticles != 20 {
		t.Errorf("Expected max news articles 20, got %d", cfg.MaxNewsArticles)
	}
	if cfg.UserAgent != "Dashboard/2.0" {
		t.Errorf("Expected user agent 'Dashboard/2.0', got '%s'", cfg.UserAgent)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string][]string{
		"zero concurrency":   {"--fetch-concurrency", "0"},
		"negative cache ttl": {"--cache-ttl", "-1"},
		"zero min filtered":  {"--min-filtered", "0"},
		"zero timeout":       {"--fetch-timeout", "0s"},
		"negative interval":  {"--host-interval", "-1s"},
		"bad duration":       {"--fetch-timeout", "soon"},
		"unknown flag":       {"--db-host", "localhost"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parse(args, flags.HelpFlag); err == nil {
				t.Errorf("Expected error for %v", args)
			}
		})
	}
}

func TestParse_Help(t *testing.T) {
	cfg, err := parse([]string{"--help"}, flags.HelpFlag)
	if err != nil {
		t.Fatalf("Expected no error for help, got: %v", err)
	}
	if cfg != nil {
		t.Error("Expected nil configuration when help is requested")
	}
}

func TestApplyTimezone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	if err := applyTimezone("Europe/Luxembourg"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if time.Local.String() != "Europe/Luxembourg" {
		t.Errorf("Expected local zone Europe/Luxembourg, got %s", time.Local)
	}

	err := applyTimezone("Not/AZone")
	if err == nil || !strings.Contains(err.Error(), "Not/AZone") {
		t.Errorf("Expected error naming the zone, got: %v", err)
	}

	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be ignored, got: %v", err)
	}
}
