package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/models"
)

// Querier is the search orchestrator. *search.Querier satisfies it.
type Querier interface {
	Query(ctx context.Context, text string) ([]string, error)
}

// Query returns a handler for POST /api/v1/query.
func Query(q Querier) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			respondError(c, models.NewError(models.KindInvalidInput, "query is blank", nil), models.TimingInfo{})
			return
		}

		urls, err := q.Query(c.Request.Context(), req.Query)
		timing := models.TimingInfo{TotalMs: time.Since(start).Milliseconds()}
		if err != nil {
			respondError(c, err, timing)
			return
		}

		c.JSON(http.StatusOK, models.QueryResponse{
			Success: true,
			URLs:    urls,
			Timing:  timing,
		})
	}
}
