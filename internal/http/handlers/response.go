// Package handlers provides the HTTP handlers of the travel planner API.
//
// Handlers are transport-thin: they bind and validate JSON, call a service
// and translate the result or a sentinel error into a response. Every
// failure goes through fail() so clients always see the ErrorResponse
// envelope with a stable code from errors.go.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-planner/internal/http/middleware"
	"github.com/tbourn/go-travel-planner/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"trip not found"`
}

// fail aborts with the error envelope. 5xx responses are logged through the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	if reqID == "" {
		reqID = middleware.RequestIDFrom(c)
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{RequestID: reqID, Code: code, Message: msg})
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// failService maps service sentinels to responses. Unknown errors become a
// 500 whose detail only reaches the log.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyDestination),
		errors.Is(err, services.ErrInvalidBudget),
		errors.Is(err, services.ErrInvalidDays),
		errors.Is(err, services.ErrEmptyTravelType),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrCommentTooLong):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrTripNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "trip not found")
	case errors.Is(err, services.ErrNoTrips):
		fail(c, http.StatusNotFound, ErrCodeNoTrips, "no trips match the request")
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("service call failed")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
