package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/models"
)

// Evaluator computes rewards. *reward.Scorer satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt, completion string) (*models.RewardReport, error)
}

// Score returns a handler for POST /api/v1/score.
func Score(ev Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.ScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		report, err := ev.Evaluate(c.Request.Context(), req.Prompt, req.Completion)
		timing := models.TimingInfo{TotalMs: time.Since(start).Milliseconds()}
		if err != nil {
			respondError(c, err, timing)
			return
		}

		c.JSON(http.StatusOK, models.ScoreResponse{
			Success:    true,
			Reward:     report.Reward,
			Samples:    report.Samples,
			NoEvidence: report.NoEvidence,
			Timing:     timing,
		})
	}
}
