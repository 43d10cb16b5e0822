// Package router assembles the YaMDb HTTP API.
package router

import (
	"log/slog"
	"net/http"

	"yamdb/internal/cache"
	"yamdb/internal/config"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Mailer  mailer.Mailer
	Ratings cache.RatingCache
	Log     *slog.Logger
}

// New builds the gin engine serving /api/v1.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	userRepo := repository.NewUserRepository(deps.DB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(deps.DB)
	categoryRepo := repository.NewCategoryRepository(deps.DB)
	genreRepo := repository.NewGenreRepository(deps.DB)
	titleRepo := repository.NewTitleRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)
	commentRepo := repository.NewCommentRepository(deps.DB)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, deps.Mailer, cfg, deps.Log)
	userService := service.NewUserService(userRepo, deps.Ratings, deps.Log)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, deps.Ratings, deps.Log)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, deps.Ratings, deps.Log)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	pages := handler.Pagination{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": policy.ErrMethodNotAllowed.Error()})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Authenticate(authService))

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)))
	handler.NewAuthHandler(authService).RegisterRoutes(authGroup)

	handler.NewUserHandler(userService, pages).RegisterRoutes(api.Group("/users"))
	handler.NewCategoryHandler(categoryService, pages).RegisterRoutes(api.Group("/categories"))
	handler.NewGenreHandler(genreService, pages).RegisterRoutes(api.Group("/genres"))

	titles := api.Group("/titles")
	handler.NewTitleHandler(titleService, pages).RegisterRoutes(titles)
	handler.NewReviewHandler(reviewService, pages).RegisterRoutes(titles)
	handler.NewCommentHandler(commentService, pages).RegisterRoutes(titles)

	return r
}
