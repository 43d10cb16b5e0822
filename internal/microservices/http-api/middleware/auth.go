package middleware

import (
	"net/http"
	"strings"

	"yamdb/internal/microservices/http-api/httperr"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const authContextKey = "auth"

// Authenticate resolves an optional bearer token into the request's AuthContext.
// Requests without an Authorization header continue anonymously; a header that
// is present but invalid is rejected.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(authContextKey, policy.Anonymous())
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		user, err := authService.Identify(c.Request.Context(), parts[1])
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(authContextKey, policy.ForUser(user))
		c.Set("userID", user.ID)
		c.Next()
	}
}

// AuthFromContext returns the identity set by Authenticate, anonymous if none.
func AuthFromContext(c *gin.Context) policy.AuthContext {
	if v, ok := c.Get(authContextKey); ok {
		if a, ok := v.(policy.AuthContext); ok {
			return a
		}
	}
	return policy.Anonymous()
}

// Authorize runs the request-level checks of an endpoint. The targeted entity is
// not loaded yet, so ownership is checked again by the service.
func Authorize(endpoint policy.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := policy.ResourceRef{Kind: endpoint.Kind, ID: c.Param(endpoint.IDParam)}
		if err := endpoint.Authorize(AuthFromContext(c), ref, policy.VerbOf(c.Request.Method)); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Next()
	}
}
