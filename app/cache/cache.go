package cache

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/aperam/ai-hub/app/feed"
)

const DefaultTTL = 300 * time.Second

// Cache stores aggregation results. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]feed.Item, bool, error)
	Set(ctx context.Context, key string, items []feed.Item, ttl time.Duration) error
	Health(ctx context.Context) map[string]any
	Close() error
}

// GenerateKey builds the cache key of an aggregation call. Filters that select
// the same items produce the same key. Labels are query-escaped, so a label
// containing the separator cannot collide with two labels.
func GenerateKey(operation string, labels []string, limit int) string {
	filter := feed.NewFilterer(labels)
	if !filter.Active() {
		return fmt.Sprintf("%s:all:%d", operation, limit)
	}

	folded := lo.Uniq(lo.Map(filter.Labels(), func(label string, _ int) string {
		return url.QueryEscape(cases.Fold().String(label))
	}))
	slices.Sort(folded)

	return fmt.Sprintf("%s:%s:%d", operation, strings.Join(folded, ","), limit)
}

// cloneItems copies items so cached values are never shared with callers.
func cloneItems(items []feed.Item) []feed.Item {
	if items == nil {
		return nil
	}
	cloned := make([]feed.Item, len(items))
	for i, item := range items {
		item.Tags = slices.Clone(item.Tags)
		cloned[i] = item
	}
	return cloned
}
