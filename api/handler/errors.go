package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/groundtruth/models"
)

// errorEnvelope is the body of every failed response.
type errorEnvelope struct {
	Success bool                `json:"success"`
	Error   *models.ErrorDetail `json:"error"`
	Timing  models.TimingInfo   `json:"timing"`
}

// respondError maps err to its HTTP status and writes a structured JSON
// error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	e := models.AsError(err)
	c.JSON(statusFor(e.Kind), errorEnvelope{
		Success: false,
		Error:   e.ToDetail(),
		Timing:  timing,
	})
}

// respondBindError reports a request body that failed validation.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorEnvelope{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    string(models.KindInvalidInput),
			Message: err.Error(),
		},
	})
}

// statusFor translates error kinds to HTTP status codes.
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindNavigationTimeout:
		return http.StatusGatewayTimeout // 504
	case models.KindNavigation,
		models.KindHTTPFetch,
		models.KindResultsContainerMissing,
		models.KindResultsListEmpty,
		models.KindInteractionExhausted,
		models.KindInteractionTimeout,
		models.KindLLMFailure,
		models.KindLLMAuthFailure:
		return http.StatusBadGateway // 502
	case models.KindLLMRateLimited:
		return http.StatusTooManyRequests // 429
	case models.KindInvalidInput:
		return http.StatusBadRequest // 400
	case models.KindExtraction:
		return http.StatusUnprocessableEntity // 422
	case models.KindExtractorNotImplemented:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}
