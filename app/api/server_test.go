package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aperam/ai-hub/app/cache"
	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/metrics"
	"github.com/aperam/ai-hub/app/news"
)

type fakeService struct {
	mu       sync.Mutex
	queries  []news.Query
	items    []feed.Item
	status   map[string]bool
	registry *feed.Registry
}

func (f *fakeService) Get(_ context.Context, q news.Query) []feed.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if len(f.items) > q.Limit {
		return f.items[:q.Limit]
	}
	return f.items
}

func (f *fakeService) TestSources(context.Context) map[string]bool {
	return f.status
}

func (f *fakeService) Registry() *feed.Registry {
	return f.registry
}

func (f *fakeService) lastQuery(t *testing.T) news.Query {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.queries)
	return f.queries[len(f.queries)-1]
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeService) {
	t.Helper()

	registry, err := feed.NewRegistry([]feed.Source{
		{Key: "openai", URL: "https://openai.example.com/rss", Category: feed.CategoryTechnology, Name: "OpenAI"},
		{Key: "arxiv", URL: "https://arxiv.example.com/rss", Category: feed.CategoryResearch, Name: "arXiv", Research: true},
		{Key: "steel", URL: "https://steel.example.com/rss", Category: feed.CategoryIndustry, Name: "Steel", Industry: true},
	})
	require.NoError(t, err)

	service := &fakeService{
		items: []feed.Item{
			{Title: "One", Category: feed.CategoryTechnology, Tags: []string{"AI"}, URL: "https://a/1"},
			{Title: "Two", Category: feed.CategoryResearch, Tags: []string{"Research"}, URL: "https://a/2"},
		},
		status:   map[string]bool{"openai": true, "arxiv": false, "steel": true},
		registry: registry,
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.RecordFallback(string(news.OpBreaking))

	handler := NewHandler(service, cache.NewMemoryCache(8, cache.DefaultTTL), reg, 50, "test")
	return NewServer(handler), service
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetNews_Defaults(t *testing.T) {
	r, service := newTestServer(t)

	tests := []struct {
		path  string
		op    news.Operation
		limit int
	}{
		{"/api/news/breaking", news.OpBreaking, 10},
		{"/api/news/research", news.OpResearch, 8},
		{"/api/news/industry", news.OpIndustry, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			w := get(t, r, tt.path)
			require.Equal(t, http.StatusOK, w.Code)

			var items []feed.Item
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
			assert.Len(t, items, 2)
			assert.Equal(t, "2", w.Header().Get("X-News-Items"))

			q := service.lastQuery(t)
			assert.Equal(t, tt.op, q.Operation)
			assert.Equal(t, tt.limit, q.Limit)
			assert.Empty(t, q.Categories)
		})
	}
}

func TestGetNews_QueryParams(t *testing.T) {
	r, service := newTestServer(t)

	w := get(t, r, "/api/news/breaking?category=Research&category=Industry,Business&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var items []feed.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	q := service.lastQuery(t)
	assert.Equal(t, []string{"Research", "Industry", "Business"}, q.Categories)
	assert.Equal(t, 1, q.Limit)
}

func TestGetNews_InvalidLimit(t *testing.T) {
	r, service := newTestServer(t)

	for _, limit := range []string{"abc", "0", "-3", "51"} {
		t.Run(limit, func(t *testing.T) {
			w := get(t, r, "/api/news/breaking?limit="+limit)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Invalid limit", resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}

	assert.Empty(t, service.queries)
}

func TestGetNews_MaxLimitAccepted(t *testing.T) {
	r, service := newTestServer(t)

	w := get(t, r, "/api/news/industry?limit=50")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, service.lastQuery(t).Limit)
}

func TestListSources(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/api/sources")
	require.Equal(t, http.StatusOK, w.Code)

	var resp sourcesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Sources, 3)

	w = get(t, r, "/api/sources?category=research")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "arxiv", resp.Sources[0].Key)

	w = get(t, r, "/api/sources?category=All")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
}

func TestGetSourcesStatus(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/api/sources/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp sourcesStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Working)
	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Sources["arxiv"])
	assert.True(t, resp.Sources["openai"])
}

func TestGetHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])
	assert.EqualValues(t, 3, resp["sources"])
	assert.NotEmpty(t, resp["timestamp"])

	cacheHealth, ok := resp["cache"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", cacheHealth["type"])
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `aihub_news_fallback_total{operation="breaking"} 1`)
}

func TestCORS(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/news/breaking", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, r, "/api/sources")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRootAndFavicon(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(t, r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "/api/news/breaking"))

	w = get(t, r, "/favicon.ico")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
