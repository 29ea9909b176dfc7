package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// StatsProvider reports browser session counters. *scraper.PageFetcher
// satisfies it.
type StatsProvider interface {
	Stats() models.SessionStats
}

// Health returns a handler for GET /api/v1/health.
//
// Status is "healthy" while a browser is open and "idle" before the first
// fetch or after shutdown of the session.
func Health(sp StatsProvider, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := sp.Stats()

		status := "healthy"
		if !stats.Live {
			status = "idle"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       status,
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			SessionStats: stats,
			Version:      Version,
		})
	}
}
