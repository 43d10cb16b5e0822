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

type CommentHandler struct {
	svc   service.CommentService
	pages Pagination
}

func NewCommentHandler(svc service.CommentService, pages Pagination) *CommentHandler {
	return &CommentHandler{svc: svc, pages: pages}
}

// RegisterRoutes registers comment routes on the /titles group
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authz := middleware.Authorize(policy.Comments)

	comments := rg.Group("/:title_id/reviews/:review_id/comments")
	{
		comments.GET("/", authz, h.List)
		comments.POST("/", authz, h.Create)
		comments.GET("/:comment_id/", authz, h.Get)
		comments.PATCH("/:comment_id/", authz, h.Update)
		comments.DELETE("/:comment_id/", authz, h.Delete)
	}
}

// parents reads the title and review ids every comment route is nested under
func parents(c *gin.Context) (titleID, reviewID int64, ok bool) {
	if titleID, ok = pathID(c, "title_id"); !ok {
		return
	}
	reviewID, ok = pathID(c, "review_id")
	return
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := parents(c)
	if !ok {
		return
	}
	page, pageSize, ok := h.pages.parse(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.ListComments(ctx, titleID, reviewID, page, pageSize)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := parents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := parents(c)
	if !ok {
		return
	}
	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.CreateComment(ctx, middleware.AuthFromContext(c), titleID, reviewID, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := parents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.UpdateComment(ctx, middleware.AuthFromContext(c), titleID, reviewID, commentID, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := parents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteComment(ctx, middleware.AuthFromContext(c), titleID, reviewID, commentID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
