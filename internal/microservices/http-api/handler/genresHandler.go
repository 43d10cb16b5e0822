package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/httperr"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc   service.GenreService
	pages Pagination
}

func NewGenreHandler(svc service.GenreService, pages Pagination) *GenreHandler {
	return &GenreHandler{svc: svc, pages: pages}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authz := middleware.Authorize(policy.Genres)

	rg.GET("/", authz, h.List)
	rg.POST("/", authz, h.Create)
	rg.GET("/:slug/", authz, h.Get)
	rg.DELETE("/:slug/", authz, h.Delete)

	// genres are immutable once created
	rg.PUT("/:slug/", authz, MethodNotAllowed)
	rg.PATCH("/:slug/", authz, MethodNotAllowed)
	rg.POST("/:slug/", authz, MethodNotAllowed)
}

// List handles GET /genres/?search=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize, ok := h.pages.parse(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.ListGenres(ctx, c.Query("search"), page, pageSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenreHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.GetGenre(ctx, c.Param("slug"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.CreateGenre(ctx, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GenreHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteGenre(ctx, c.Param("slug")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
