// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	// Abort FIRST before writing response
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// ValidationError sends a 400 response carrying a field->message map so the
// client can surface errors inline next to the offending inputs.
func ValidationError(c *gin.Context, message string, fields interface{}) {
	c.Abort()
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Fields:  fields,
	})
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// fielder is any validation error carrying a field->message map.
type fielder interface {
	error
	Fields() map[string]string
}

// HandleError maps a service error onto the right HTTP status. Handlers call
// it instead of re-deriving statuses individually.
func HandleError(c *gin.Context, err error) {
	var fe fielder
	if errors.As(err, &fe) {
		ValidationError(c, "validation failed", fe.Fields())
		return
	}

	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, xerrors.ErrUnauthorized), errors.Is(err, xerrors.ErrSessionExpired):
		Error(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, xerrors.ErrPermissionDenied):
		Error(c, http.StatusForbidden, "the data store rejected the operation", err)
	case errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, xerrors.ErrValidation), errors.Is(err, xerrors.ErrBadRequest), errors.Is(err, xerrors.ErrInvalidInput):
		Error(c, http.StatusBadRequest, "invalid request", err)
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err)
	}
}
