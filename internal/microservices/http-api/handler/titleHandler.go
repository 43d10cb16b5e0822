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

type TitleHandler struct {
	svc   service.TitleService
	pages Pagination
}

func NewTitleHandler(svc service.TitleService, pages Pagination) *TitleHandler {
	return &TitleHandler{svc: svc, pages: pages}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authz := middleware.Authorize(policy.Titles)

	rg.GET("/", authz, h.List)
	rg.POST("/", authz, h.Create)
	rg.GET("/:title_id/", authz, h.Get)
	rg.PATCH("/:title_id/", authz, h.Update)
	rg.DELETE("/:title_id/", authz, h.Delete)
}

// List handles GET /titles/?category=&genre=&year=&name=
func (h *TitleHandler) List(c *gin.Context) {
	var filter dto.TitleFilterQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		httperr.BadRequest(c, err)
		return
	}
	page, pageSize, ok := h.pages.parse(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.ListTitles(ctx, filter, page, pageSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.GetTitle(ctx, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.CreateTitle(ctx, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var in dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.UpdateTitle(ctx, id, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteTitle(ctx, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
