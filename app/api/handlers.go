package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"github.com/aperam/ai-hub/app/cache"
	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/news"
)

// NewHandler builds the HTTP handlers. resultCache may be nil; maxLimit
// bounds the limit query parameter.
func NewHandler(service NewsService, resultCache cache.Cache, gatherer prometheus.Gatherer, maxLimit int, version string) *Handler {
	return &Handler{
		service:  service,
		cache:    resultCache,
		gatherer: gatherer,
		maxLimit: maxLimit,
		version:  version,
	}
}

// GetNews serves one news operation. Query parameters: category (repeatable
// or comma separated) and limit.
func (h *Handler) GetNews(op news.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := h.parseLimit(c.Query("limit"), op.DefaultLimit())
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid limit", Message: err.Error()})
			return
		}

		query := news.Query{
			Operation:  op,
			Categories: categoriesParam(c),
			Limit:      limit,
		}

		items := h.service.Get(c.Request.Context(), query)

		c.Header("X-News-Items", strconv.Itoa(len(items)))
		c.JSON(http.StatusOK, items)
	}
}

func (h *Handler) ListSources(c *gin.Context) {
	registry := h.service.Registry()

	sources := registry.All()
	if category := strings.TrimSpace(c.Query("category")); category != "" && !feed.IsAllFilter(category) {
		sources = registry.ByCategory(category)
	}

	c.JSON(http.StatusOK, sourcesResponse{
		Sources: sources,
		Total:   len(sources),
	})
}

func (h *Handler) GetSourcesStatus(c *gin.Context) {
	status := h.service.TestSources(c.Request.Context())

	working := lo.CountBy(lo.Values(status), func(up bool) bool { return up })
	if working == 0 && len(status) > 0 {
		slog.Warn("No source is returning entries", "total", len(status))
	}

	c.JSON(http.StatusOK, sourcesStatusResponse{
		Sources: status,
		Working: working,
		Total:   len(status),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version,
		"sources":   h.service.Registry().Len(),
	}

	if h.cache != nil {
		health["cache"] = h.cache.Health(c.Request.Context())
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) parseLimit(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return min(fallback, h.maxLimit), nil
	}

	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer, got %q", raw)
	}
	if limit < 1 || limit > h.maxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d", h.maxLimit, limit)
	}

	return limit, nil
}

func categoriesParam(c *gin.Context) []string {
	var categories []string
	for _, value := range c.QueryArray("category") {
		categories = append(categories, strings.Split(value, ",")...)
	}
	return categories
}
