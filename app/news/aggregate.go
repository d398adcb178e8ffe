package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/metrics"
)

// sourceResult is the outcome of one source. entries counts parsed entries,
// items holds the normalized ones within the per-source cap.
type sourceResult struct {
	items   []feed.Item
	entries int
	err     error
}

// collect fetches sources concurrently. Results keep the order of sources so
// merging matches a sequential walk of the registry.
func (s *Service) collect(ctx context.Context, sources []feed.Source, perSource int) []sourceResult {
	results := make([]sourceResult, len(sources))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			results[i] = s.processSource(ctx, source, perSource)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (s *Service) processSource(ctx context.Context, source feed.Source, perSource int) (result sourceResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Source processing panicked", "source", source.Key, "panic", r)
			result = sourceResult{err: fmt.Errorf("source %s panicked: %v", source.Key, r)}
			s.metrics.RecordSourceFetch(source.Key, metrics.ResultPanic, time.Since(start))
		}
	}()

	entries, err := s.entries(ctx, source)
	if err != nil {
		s.metrics.RecordSourceFetch(source.Key, errorResult(err), time.Since(start))
		slog.Warn("Skipping source", "source", source.Key, "error", err)
		return sourceResult{err: err}
	}

	if len(entries) == 0 {
		s.metrics.RecordSourceFetch(source.Key, metrics.ResultEmpty, time.Since(start))
		return sourceResult{}
	}

	capped := entries[:min(perSource, len(entries))]
	items := make([]feed.Item, 0, len(capped))

	for _, entry := range capped {
		item, err := s.processEntry(ctx, source, entry)
		if err != nil {
			s.metrics.RecordEntrySkipped(source.Key)
			slog.Warn("Skipping entry", "source", source.Key, "link", entry.Link, "error", err)
			continue
		}
		items = append(items, item)
	}

	s.metrics.RecordSourceFetch(source.Key, metrics.ResultOK, time.Since(start))

	return sourceResult{items: items, entries: len(entries)}
}

// processEntry enriches and normalizes one entry. A panic fails only this
// entry.
func (s *Service) processEntry(ctx context.Context, source feed.Source, entry feed.Entry) (item feed.Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = feed.Item{}, &feed.EntryNormalizationError{Source: source.Key, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	return s.normalizer.Run(s.enrich(ctx, source, entry), source)
}

// entries fetches and parses one source. Entries recovered from a malformed
// document are kept.
func (s *Service) entries(ctx context.Context, source feed.Source) ([]feed.Entry, error) {
	data, err := s.fetcher.Run(ctx, source)
	if err != nil {
		return nil, err
	}

	entries, err := s.parser.Run(data)
	if err != nil {
		parseErr := &feed.SourceParseError{Source: source.Key, Err: err}
		if len(entries) == 0 {
			return nil, parseErr
		}
		slog.Warn("Feed parsed with errors, keeping entries", "source", source.Key, "entries", len(entries), "error", parseErr)
	}

	return entries, nil
}

// enrich fills an entry without description or content from its article
// page, for sources that allow it.
func (s *Service) enrich(ctx context.Context, source feed.Source, entry feed.Entry) feed.Entry {
	if !source.ExtractContent || entry.Link == "" {
		return entry
	}
	if strings.TrimSpace(entry.Description) != "" || strings.TrimSpace(entry.Content) != "" {
		return entry
	}

	pageURL, err := url.Parse(entry.Link)
	if err != nil {
		slog.Debug("Invalid entry link, skipping content extraction", "source", source.Key, "link", entry.Link, "error", err)
		return entry
	}

	data, err := s.fetcher.Page(ctx, source, entry.Link)
	if err != nil {
		slog.Debug("Failed to fetch article page", "source", source.Key, "link", entry.Link, "error", err)
		return entry
	}

	text, err := s.extractor.Run(data, pageURL)
	if err != nil {
		slog.Debug("Failed to extract article content", "source", source.Key, "link", entry.Link, "error", err)
		return entry
	}

	entry.Description = text
	return entry
}

// assemble merges, sorts, filters and truncates. With relax set, a filter
// leaving fewer than minFiltered items is dropped when the
// unfiltered list has at least that many. A panic becomes an error.
func (s *Service) assemble(q Query, results []sourceResult, extra []feed.Item, relax bool) (items []feed.Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("assembling %s panicked: %v", q.Operation, r)
		}
	}()

	merged := merge(results, extra)
	sortByDate(merged)

	filter := feed.NewFilterer(q.Categories)
	filtered := filter.Run(merged)

	if relax && filter.Active() && len(filtered) < s.minFiltered && len(merged) >= s.minFiltered {
		slog.Info("Category filter relaxed", "operation", q.Operation, "categories", filter.Labels(), "matched", len(filtered), "total", len(merged))
		s.metrics.RecordFilterRelaxed(string(q.Operation))
		filtered = merged
	}

	return truncate(filtered, q.Limit), nil
}

func merge(results []sourceResult, extra []feed.Item) []feed.Item {
	size := len(extra)
	for _, result := range results {
		size += len(result.items)
	}

	merged := make([]feed.Item, 0, size)
	for _, result := range results {
		merged = append(merged, result.items...)
	}
	return append(merged, extra...)
}

// sortByDate orders items newest first. Dates are YYYY-MM-DD, so string order
// is date order; same-day items keep their merge order.
func sortByDate(items []feed.Item) {
	slices.SortStableFunc(items, func(a, b feed.Item) int {
		return strings.Compare(b.PublishedDate, a.PublishedDate)
	})
}

func truncate(items []feed.Item, limit int) []feed.Item {
	if limit <= 0 {
		return []feed.Item{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func countWorking(results []sourceResult) int {
	working := 0
	for _, result := range results {
		if result.entries > 0 {
			working++
		}
	}
	return working
}

func errorResult(err error) string {
	var parseErr *feed.SourceParseError
	if errors.As(err, &parseErr) {
		return metrics.ResultParseError
	}
	return metrics.ResultFetchError
}
