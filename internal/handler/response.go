package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"payproc/internal/domain"
)

// ProcessResponse is the success body for a processed document.
type ProcessResponse struct {
	CorrelationID string                  `json:"correlationId"`
	Status        domain.ProcessingStatus `json:"status"`
}

// ErrorResponse is the error body. Detail is present only for unexpected
// internal failures.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// RespondError sends an error body with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// MapDomainError translates decode-stage sentinel errors to HTTP status
// codes and messages. Anything unrecognized is an internal failure.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingDocument):
		return http.StatusBadRequest, "documentBase64 required"
	case errors.Is(err, domain.ErrInvalidBase64):
		return http.StatusBadRequest, "invalid base64"
	default:
		return http.StatusInternalServerError, "lambda-failed"
	}
}

// HandleError maps err and writes the corresponding error response,
// attaching detail only for internal failures.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: msg, Detail: err.Error()})
		return
	}
	RespondError(c, status, msg)
}
