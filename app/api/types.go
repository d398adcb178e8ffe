package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aperam/ai-hub/app/cache"
	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/news"
)

// NewsService is the part of news.Service the handlers serve.
type NewsService interface {
	Get(ctx context.Context, q news.Query) []feed.Item
	TestSources(ctx context.Context) map[string]bool
	Registry() *feed.Registry
}

var _ NewsService = (*news.Service)(nil)

type Handler struct {
	service  NewsService
	cache    cache.Cache
	gatherer prometheus.Gatherer
	maxLimit int
	version  string
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type sourcesResponse struct {
	Sources []feed.Source `json:"sources"`
	Total   int           `json:"total"`
}

type sourcesStatusResponse struct {
	Sources map[string]bool `json:"sources"`
	Working int             `json:"working"`
	Total   int             `json:"total"`
}
