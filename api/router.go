package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/api/handler"
	"github.com/use-agent/groundtruth/api/middleware"
	"github.com/use-agent/groundtruth/config"
)

// Services are the pipeline components the routes drive.
type Services struct {
	Stats     handler.StatsProvider
	Querier   handler.Querier
	Documents handler.Documents
	Scorer    handler.Evaluator
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger (slog)
func NewRouter(svc Services, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(svc.Stats, startTime))
	v1.POST("/query", handler.Query(svc.Querier))
	v1.POST("/extract", handler.Extract(svc.Documents))
	v1.POST("/score", handler.Score(svc.Scorer))

	return r
}
