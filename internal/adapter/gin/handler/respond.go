package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "carpool-service/pkg/errors"
)

// ErrorResponse represents an error response envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorCode maps an HTTP status to a stable machine-readable code.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}

// handleError converts usecase errors to HTTP responses. Internal failures
// are logged with full detail server-side and surfaced with a generic
// message only.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	if he, ok := err.(pkgerrors.HTTPStatuser); ok {
		status = he.HTTPStatus()
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		message = "An internal error occurred"
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   errorCode(status),
		Message: message,
	})
}
