package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/models"
)

// Documents resolves URLs to extracted text. *extract.Service satisfies it.
type Documents interface {
	Document(ctx context.Context, url string, steps ...models.InteractionStep) (*models.Document, error)
}

// Extract returns a handler for POST /api/v1/extract.
//
// Flow:
//  1. Parse & validate the request and its interaction steps.
//  2. Resolve the extractor, fetch the page, run the steps, extract.
//  3. Respond with the document and timing.
func Extract(docs Documents) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		steps := make([]models.InteractionStep, len(req.Steps))
		for i, s := range req.Steps {
			steps[i] = s.ToStep()
			if err := steps[i].Validate(); err != nil {
				respondError(c, err, models.TimingInfo{})
				return
			}
		}

		// ── 2. Fetch + extract ──────────────────────────────────────
		doc, err := docs.Document(c.Request.Context(), req.URL, steps...)
		timing := models.TimingInfo{TotalMs: time.Since(start).Milliseconds()}
		if err != nil {
			respondError(c, err, timing)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusOK, models.ExtractResponse{
			Success:  true,
			Document: doc,
			Timing:   timing,
		})
	}
}
