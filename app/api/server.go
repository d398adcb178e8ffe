package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aperam/ai-hub/app/news"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health", "/metrics"},
	}))

	r.Use(gin.Recovery())

	// The dashboard is served from another origin.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api")
	{
		api.GET("/news/breaking", handler.GetNews(news.OpBreaking))
		api.GET("/news/research", handler.GetNews(news.OpResearch))
		api.GET("/news/industry", handler.GetNews(news.OpIndustry))

		api.GET("/sources", handler.ListSources)
		api.GET("/sources/status", handler.GetSourcesStatus)
	}

	r.GET("/health", handler.GetHealth)

	if handler.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(handler.gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "AI Hub News",
			"version":     handler.version,
			"description": "AI news aggregated from RSS/Atom sources, normalized, tagged and scored",
			"endpoints": map[string]string{
				"breaking":       "/api/news/breaking?category=<name>&limit=<n>",
				"research":       "/api/news/research?category=<name>&limit=<n>",
				"industry":       "/api/news/industry?category=<name>&limit=<n>",
				"sources":        "/api/sources?category=<name>",
				"sources_status": "/api/sources/status",
				"health":         "/health",
				"metrics":        "/metrics",
			},
			"max_limit": handler.maxLimit,
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
