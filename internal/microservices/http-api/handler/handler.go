package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"yamdb/internal/microservices/http-api/httperr"
	"yamdb/internal/microservices/http-api/policy"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// Pagination holds the page size limits of list endpoints.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

// parse reads ?page= and ?page_size=. A bad page is an error; a bad page size
// falls back to the default and a large one is capped.
func (p Pagination) parse(c *gin.Context) (page, pageSize int, ok bool) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "invalid page"})
			return 0, 0, false
		}
		page = n
	}

	pageSize = p.DefaultSize
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > p.MaxSize {
		pageSize = p.MaxSize
	}
	return page, pageSize, true
}

// pathID parses a numeric path parameter; anything else is answered with 404.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// MethodNotAllowed answers routes that exist only so the access policy can refuse them.
func MethodNotAllowed(c *gin.Context) {
	httperr.Abort(c, policy.ErrMethodNotAllowed)
}
