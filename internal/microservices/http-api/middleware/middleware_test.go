package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubAuthService knows a fixed set of access tokens
type stubAuthService struct {
	service.AuthService
	users map[string]*models.User
}

func (s stubAuthService) Identify(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, service.ErrInvalidToken
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func TestAuthenticate(t *testing.T) {
	auth := stubAuthService{users: map[string]*models.User{
		"good": {ID: "user-id", Role: models.RoleModerator},
	}}

	r := newEngine(Authenticate(auth))
	var seen policy.AuthContext
	r.GET("/whoami", func(c *gin.Context) {
		seen = AuthFromContext(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/whoami", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, seen.IsAuthenticated)

	w = serve(r, http.MethodGet, "/whoami", bearer("good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.AuthContext{UserID: "user-id", Role: models.RoleModerator, IsAuthenticated: true}, seen)

	w = serve(r, http.MethodGet, "/whoami", bearer("bad"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/whoami", http.Header{"Authorization": {"Token good"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthFromContext_Default(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, policy.Anonymous(), AuthFromContext(c))
}

func TestAuthorize(t *testing.T) {
	auth := stubAuthService{users: map[string]*models.User{
		"admin": {ID: "admin-id", Role: models.RoleAdmin},
		"user":  {ID: "user-id", Role: models.RoleUser},
	}}

	r := newEngine(Authenticate(auth))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/users/:username/", Authorize(policy.Users), ok)
	r.DELETE("/users/:username/", Authorize(policy.Users), ok)
	r.POST("/genres/", Authorize(policy.Genres), ok)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous", http.MethodGet, "/users/me/", "", http.StatusUnauthorized},
		{"user reads self", http.MethodGet, "/users/me/", "user", http.StatusOK},
		{"user reads other", http.MethodGet, "/users/bob/", "user", http.StatusForbidden},
		{"admin deletes self", http.MethodDelete, "/users/me/", "admin", http.StatusMethodNotAllowed},
		{"admin deletes other", http.MethodDelete, "/users/bob/", "admin", http.StatusOK},
		{"user creates genre", http.MethodPost, "/genres/", "user", http.StatusForbidden},
		{"admin creates genre", http.MethodPost, "/genres/", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var header http.Header
			if tt.token != "" {
				header = bearer(tt.token)
			}
			assert.Equal(t, tt.want, serve(r, tt.method, tt.path, header).Code)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(60, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// buckets are per client
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(NewIPRateLimiter(1, 1)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/", http.Header{"Origin": {"http://evil.test"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	wildcard := newEngine(CORS([]string{"*"}))
	wildcard.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = serve(wildcard, http.MethodGet, "/", http.Header{"Origin": {"http://any.test"}})
	assert.Equal(t, "http://any.test", w.Header().Get("Access-Control-Allow-Origin"))
}
