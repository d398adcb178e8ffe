package cfg

import "time"

type Cfg struct {
	// HTTP server
	Port string

	// Feed fetching
	SourcesFile      string
	UserAgent        string
	FetchTimeout     time.Duration
	FetchConcurrency int
	FetchAttempts    uint
	HostInterval     time.Duration

	// Result cache
	CacheTTL  time.Duration
	CacheSize int
	RedisURL  string

	// Cache warming
	WarmCache         bool
	WorkerCount       int
	SchedulerInterval int

	// API limits
	MaxNewsArticles int
	MinFiltered     int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
