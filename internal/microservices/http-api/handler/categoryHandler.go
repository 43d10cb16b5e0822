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

type CategoryHandler struct {
	svc   service.CategoryService
	pages Pagination
}

func NewCategoryHandler(svc service.CategoryService, pages Pagination) *CategoryHandler {
	return &CategoryHandler{svc: svc, pages: pages}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authz := middleware.Authorize(policy.Categories)

	rg.GET("/", authz, h.List)
	rg.POST("/", authz, h.Create)
	rg.GET("/:slug/", authz, h.Get)
	rg.DELETE("/:slug/", authz, h.Delete)

	// categories are immutable once created
	rg.PUT("/:slug/", authz, MethodNotAllowed)
	rg.PATCH("/:slug/", authz, MethodNotAllowed)
	rg.POST("/:slug/", authz, MethodNotAllowed)
}

// List handles GET /categories/?search=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize, ok := h.pages.parse(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.ListCategories(ctx, c.Query("search"), page, pageSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.GetCategory(ctx, c.Param("slug"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.CreateCategory(ctx, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteCategory(ctx, c.Param("slug")); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
