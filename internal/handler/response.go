package handler

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/repository"
	"freight/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidShipmentID),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidWeight),
		errors.Is(err, service.ErrInvalidEquipment),
		errors.Is(err, service.ErrInvalidStrategy),
		errors.Is(err, service.ErrInvalidMargin):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// round2 rounds a monetary value to 2 decimals for display. Internal
// computation keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
