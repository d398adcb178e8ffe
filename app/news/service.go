package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/aperam/ai-hub/app/cache"
	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/metrics"
)

type Operation string

const (
	OpBreaking Operation = "breaking"
	OpResearch Operation = "research"
	OpIndustry Operation = "industry"
)

// Entries taken from each source before merging.
const (
	breakingPerSource = 3
	researchPerSource = 3
	industryPerSource = 2
)

const DefaultConcurrency = 8

// Research entries are presented uniformly regardless of feed content.
var (
	researchImpact = 4
	researchTags   = []string{"Research", "AI", "Academic"}
)

// DefaultLimit is the number of items a dashboard panel shows for op.
func (op Operation) DefaultLimit() int {
	switch op {
	case OpResearch, OpIndustry:
		return 8
	default:
		return 10
	}
}

func (op Operation) Valid() bool {
	switch op {
	case OpBreaking, OpResearch, OpIndustry:
		return true
	}
	return false
}

// Query identifies one aggregation call.
type Query struct {
	Operation  Operation
	Categories []string
	Limit      int
}

func (q Query) Key() string {
	return cache.GenerateKey(string(q.Operation), q.Categories, q.Limit)
}

// Fetcher downloads feed documents and article pages.
type Fetcher interface {
	Run(ctx context.Context, source feed.Source) ([]byte, error)
	Page(ctx context.Context, source feed.Source, link string) ([]byte, error)
}

type Options struct {
	Concurrency int
	CacheTTL    time.Duration
	// MinFiltered is the breaking news relaxation threshold; defaults to
	// feed.MinFilteredResults.
	MinFiltered int
	// Now is the ingestion clock; defaults to time.Now.
	Now func() time.Time
}

// Service aggregates feed sources into news lists. It never fails: when no
// source produces entries it serves fallback content.
type Service struct {
	registry   *feed.Registry
	fetcher    Fetcher
	parser     *feed.Parser
	normalizer *feed.Normalizer
	extractor  *feed.ContentExtractor
	cache      cache.Cache
	metrics    *metrics.Metrics

	concurrency int
	cacheTTL    time.Duration
	minFiltered int
	now         func() time.Time
}

// NewService wires the aggregator. resultCache and m may be nil.
func NewService(registry *feed.Registry, fetcher Fetcher, resultCache cache.Cache, m *metrics.Metrics, opts Options) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.MinFiltered <= 0 {
		opts.MinFiltered = feed.MinFilteredResults
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		registry:    registry,
		fetcher:     fetcher,
		parser:      feed.NewParser(),
		normalizer:  feed.NewNormalizer(opts.Now),
		extractor:   feed.NewContentExtractor(),
		cache:       resultCache,
		metrics:     m,
		concurrency: opts.Concurrency,
		cacheTTL:    opts.CacheTTL,
		minFiltered: opts.MinFiltered,
		now:         opts.Now,
	}
}

func (s *Service) Registry() *feed.Registry {
	return s.registry
}

// BreakingNews merges the latest entries of every registered source.
func (s *Service) BreakingNews(ctx context.Context, categories []string, limit int) []feed.Item {
	return s.Get(ctx, Query{Operation: OpBreaking, Categories: categories, Limit: limit})
}

// ResearchPapers returns the research source's entries plus curated papers.
func (s *Service) ResearchPapers(ctx context.Context, categories []string, limit int) []feed.Item {
	return s.Get(ctx, Query{Operation: OpResearch, Categories: categories, Limit: limit})
}

// IndustryUpdates returns the industry sources' entries plus curated updates.
func (s *Service) IndustryUpdates(ctx context.Context, categories []string, limit int) []feed.Item {
	return s.Get(ctx, Query{Operation: OpIndustry, Categories: categories, Limit: limit})
}

// Get serves q from the cache when possible.
func (s *Service) Get(ctx context.Context, q Query) []feed.Item {
	if q.Limit <= 0 {
		return []feed.Item{}
	}

	if items, ok := s.lookup(ctx, q); ok {
		return items
	}

	return s.Refresh(ctx, q)
}

// Refresh recomputes q, bypassing the cache, and stores the result unless it
// is fallback content.
func (s *Service) Refresh(ctx context.Context, q Query) []feed.Item {
	if q.Limit <= 0 {
		return []feed.Item{}
	}

	start := time.Now()
	items, fallback := s.aggregate(ctx, q)
	s.metrics.RecordAggregation(string(q.Operation), time.Since(start))

	slog.Debug("News aggregated", "operation", q.Operation, "categories", q.Categories, "limit", q.Limit, "items", len(items), "fallback", fallback, "duration", time.Since(start))

	if !fallback {
		s.store(ctx, q, items)
	}

	return items
}

// TestSources probes every source and reports whether it returned at least one entry.
func (s *Service) TestSources(ctx context.Context) map[string]bool {
	sources := s.registry.All()
	results := s.collect(ctx, sources, 0)

	status := make(map[string]bool, len(sources))
	for i, source := range sources {
		status[source.Key] = results[i].entries > 0
	}
	return status
}

func (s *Service) aggregate(ctx context.Context, q Query) ([]feed.Item, bool) {
	switch q.Operation {
	case OpResearch:
		return s.researchPapers(ctx, q), false
	case OpIndustry:
		return s.industryUpdates(ctx, q), false
	default:
		return s.breakingNews(ctx, q)
	}
}

func (s *Service) breakingNews(ctx context.Context, q Query) ([]feed.Item, bool) {
	sources := s.registry.All()
	results := s.collect(ctx, sources, breakingPerSource)

	if working := countWorking(results); working == 0 {
		slog.Warn("No source returned entries, serving fallback news", "event", "all_sources_failed", "operation", q.Operation, "sources", len(sources))
		return s.fallback(q), true
	}

	items, err := s.assemble(q, results, nil, true)
	if err != nil {
		slog.Error("News aggregation failed, serving fallback news", "operation", q.Operation, "error", err)
		return s.fallback(q), true
	}

	return items, false
}

func (s *Service) researchPapers(ctx context.Context, q Query) []feed.Item {
	results := s.collect(ctx, s.registry.Research(), researchPerSource)

	for i := range results {
		for j := range results[i].items {
			item := &results[i].items[j]
			item.Category = feed.CategoryResearch
			item.ImpactScore = researchImpact
			item.Tags = append([]string(nil), researchTags...)
		}
	}

	items, err := s.assemble(q, results, feed.CuratedResearch(), false)
	if err != nil {
		slog.Error("Research aggregation failed, serving curated papers", "error", err)
		return truncate(feed.CuratedResearch(), q.Limit)
	}
	return items
}

func (s *Service) industryUpdates(ctx context.Context, q Query) []feed.Item {
	results := s.collect(ctx, s.registry.Industry(), industryPerSource)

	items, err := s.assemble(q, results, feed.CuratedIndustry(), false)
	if err != nil {
		slog.Error("Industry aggregation failed, serving curated updates", "error", err)
		return truncate(feed.CuratedIndustry(), q.Limit)
	}
	return items
}

func (s *Service) fallback(q Query) []feed.Item {
	s.metrics.RecordFallback(string(q.Operation))
	return truncate(feed.FallbackItems(s.now()), q.Limit)
}

func (s *Service) lookup(ctx context.Context, q Query) ([]feed.Item, bool) {
	if s.cache == nil {
		return nil, false
	}

	op := string(q.Operation)
	items, ok, err := s.cache.Get(ctx, q.Key())
	switch {
	case err != nil:
		slog.Warn("Cache lookup failed", "key", q.Key(), "error", err)
		s.metrics.RecordCache(op, metrics.CacheError)
		return nil, false
	case !ok:
		s.metrics.RecordCache(op, metrics.CacheMiss)
		return nil, false
	default:
		s.metrics.RecordCache(op, metrics.CacheHit)
		return items, true
	}
}

func (s *Service) store(ctx context.Context, q Query, items []feed.Item) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, q.Key(), items, s.cacheTTL); err != nil {
		slog.Warn("Failed to store aggregation result", "key", q.Key(), "error", err)
	}
}
