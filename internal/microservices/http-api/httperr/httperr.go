// Package httperr maps service and access policy errors onto HTTP responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

var statuses = []struct {
	kind   error
	status int
}{
	{policy.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
	{policy.ErrNotAuthenticated, http.StatusUnauthorized},
	{policy.ErrPermissionDenied, http.StatusForbidden},
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrConflict, http.StatusBadRequest},
	{service.ErrAuthenticationFailed, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
}

// Status returns the response status and client-facing message for err.
func Status(err error) (int, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		for _, s := range statuses {
			if errors.Is(svcErr.Kind, s.kind) {
				return s.status, svcErr.Msg
			}
		}
	}
	for _, s := range statuses {
		if errors.Is(err, s.kind) {
			return s.status, s.kind.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// Abort writes err as a JSON error body and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BadRequest reports a request body or query that failed to bind.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
