// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error shape returned by every endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends a JSON payload with the given status (200 when zero).
func Success(c *gin.Context, status int, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string) {
	// Abort before writing so later handlers in the chain are skipped.
	c.Abort()
	c.JSON(code, ErrorBody{Error: message})
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// FromError maps service errors onto HTTP statuses. Store failures keep their
// raw message.
func FromError(c *gin.Context, err error) {
	Error(c, StatusFor(err), errorMessage(err))
}

// StatusFor returns the HTTP status used for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage strips service-level wrapping from client errors so the
// caller sees "Name is required" rather than "create company: Name is required".
func errorMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return err.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil || StatusFor(next) != StatusFor(err) {
			return err.Error()
		}
		err = next
	}
}
