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

type ReviewHandler struct {
	svc   service.ReviewService
	pages Pagination
}

func NewReviewHandler(svc service.ReviewService, pages Pagination) *ReviewHandler {
	return &ReviewHandler{svc: svc, pages: pages}
}

// RegisterRoutes mounts the review routes on the /titles group
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authz := middleware.Authorize(policy.Reviews)

	reviews := rg.Group("/:title_id/reviews")
	{
		reviews.GET("/", authz, h.List)
		reviews.POST("/", authz, h.Create)
		reviews.GET("/:review_id/", authz, h.Get)
		reviews.PATCH("/:review_id/", authz, h.Update)
		reviews.DELETE("/:review_id/", authz, h.Delete)
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	page, pageSize, ok := h.pages.parse(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.ListReviews(ctx, titleID, page, pageSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.GetReview(ctx, titleID, reviewID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.CreateReview(ctx, middleware.AuthFromContext(c), titleID, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.UpdateReview(ctx, middleware.AuthFromContext(c), titleID, reviewID, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteReview(ctx, middleware.AuthFromContext(c), titleID, reviewID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
