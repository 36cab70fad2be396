package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"searxproxy/util"
)

// Version is reported by GET /.
const Version = "1.0.0"

// RouterOptions toggles the optional middleware and routes.
type RouterOptions struct {
	EnableCompression bool
	MinSizeToCompress int
	MetricsEnabled    bool
}

// SetupRouter wires middleware and routes.
func SetupRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(MetricsMiddleware())
	if opts.EnableCompression {
		r.Use(util.GzipMiddleware(opts.MinSizeToCompress))
	}

	r.GET("/", h.IndexHandler)

	api := r.Group("/api")
	{
		api.GET("/search", h.SearchHandler)
		api.GET("/engines", h.EnginesHandler)
		api.GET("/health", h.HealthHandler)
	}

	if opts.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return r
}
