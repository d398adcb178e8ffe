package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Feed fetching
	SourcesFile      string        `long:"sources-file" env:"SOURCES_FILE" default:"./feeds/sources.yml" description:"YAML feed source catalog (built-in catalog when missing)"`
	UserAgent        string        `long:"user-agent" env:"USER_AGENT" default:"AI Hub News/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout     time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"8s" description:"Timeout of a single feed request"`
	FetchConcurrency int           `long:"fetch-concurrency" env:"FETCH_CONCURRENCY" default:"8" description:"Number of sources fetched in parallel"`
	FetchAttempts    uint          `long:"fetch-attempts" env:"FETCH_ATTEMPTS" default:"2" description:"Attempts per feed request, including the first"`
	HostInterval     time.Duration `long:"host-interval" env:"HOST_INTERVAL" default:"200ms" description:"Minimum spacing of requests to the same host (0 disables)"`

	// Result cache
	CacheTTL  int    `long:"cache-ttl" env:"CACHE_TTL" default:"300" description:"Result cache TTL in seconds"`
	CacheSize int    `long:"cache-size" env:"CACHE_SIZE" default:"128" description:"Maximum entries of the in-memory result cache"`
	RedisURL  string `long:"redis-url" env:"REDIS_URL" description:"Redis URL for a shared result cache (e.g., redis://localhost:6379/0); in-memory when empty"`

	// Cache warming
	WarmCache         bool `long:"warm-cache" env:"WARM_CACHE" description:"Refresh the default news queries in the background"`
	WorkerCount       int  `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for cache warming"`
	SchedulerInterval int  `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"240" description:"Scheduler interval in seconds"`

	MaxNewsArticles int `long:"max-news-articles" env:"MAX_NEWS_ARTICLES" default:"50" description:"Largest limit accepted by the news endpoints"`
	MinFiltered     int `long:"min-filtered" env:"MIN_FILTERED" default:"3" description:"Breaking news category filters matching fewer items are ignored"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for ingestion dates (e.g., UTC, Europe/Luxembourg)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses the command line and environment. It returns nil, nil when
// help was requested.
func Load() (*Cfg, error) {
	cfg, err := parse(os.Args[1:], flags.Default)
	if err != nil || cfg == nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func parse(args []string, options flags.Options) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, options)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Cfg{
		Port:              raw.Port,
		SourcesFile:       raw.SourcesFile,
		UserAgent:         raw.UserAgent,
		FetchTimeout:      raw.FetchTimeout,
		FetchConcurrency:  raw.FetchConcurrency,
		FetchAttempts:     raw.FetchAttempts,
		HostInterval:      raw.HostInterval,
		CacheTTL:          time.Duration(raw.CacheTTL) * time.Second,
		CacheSize:         raw.CacheSize,
		RedisURL:          raw.RedisURL,
		WarmCache:         raw.WarmCache,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		MaxNewsArticles:   raw.MaxNewsArticles,
		MinFiltered:       raw.MinFiltered,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}, nil
}

func validate(raw rawCfg) error {
	positive := []struct {
		name  string
		value int
	}{
		{"fetch-concurrency", raw.FetchConcurrency},
		{"fetch-attempts", int(raw.FetchAttempts)},
		{"cache-ttl", raw.CacheTTL},
		{"cache-size", raw.CacheSize},
		{"worker-count", raw.WorkerCount},
		{"scheduler-interval", raw.SchedulerInterval},
		{"max-news-articles", raw.MaxNewsArticles},
		{"min-filtered", raw.MinFiltered},
	}

	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", field.name, field.value)
		}
	}

	if raw.FetchTimeout <= 0 {
		return fmt.Errorf("fetch-timeout must be positive, got %s", raw.FetchTimeout)
	}
	if raw.HostInterval < 0 {
		return fmt.Errorf("host-interval must not be negative, got %s", raw.HostInterval)
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	time.Local = loc
	slog.Info("Timezone configured", "timezone", timezone)

	return nil
}
