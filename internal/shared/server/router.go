package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/analyses"
	"resume-screener/internal/config"
	"resume-screener/internal/documents"
	"resume-screener/internal/report"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const analyzeRateLimitGroup = "ANALYZE"

// RouterDeps gathers the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
	ReportHandler    *report.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":             {Rate: 10, Burst: 20},
				analyzeRateLimitGroup: {Rate: 0.5, Burst: 2},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/analyses") {
					return analyzeRateLimitGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	deps.DocumentsHandler.RegisterRoutes(api)
	deps.AnalysesHandler.RegisterRoutes(api)
	deps.ReportHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
