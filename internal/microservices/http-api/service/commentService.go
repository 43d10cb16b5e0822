package service

import (
	"context"
	"net/http"
	"strconv"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
)

type CommentService interface {
	ListComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Page[dto.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	CreateComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// requireReview checks that the review exists under the given title
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return translate(err, ErrReviewNotFound, nil)
	}
	return nil
}

// ListComments retrieves the comments of a review with pagination
func (s *commentService) ListComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Page[dto.CommentResponse], error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *commentService) load(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, translate(err, ErrCommentNotFound, nil)
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

// CreateComment creates a new comment on a review
func (s *commentService) CreateComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: caller.UserID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	return s.GetComment(ctx, titleID, reviewID, comment.ID)
}

// UpdateComment updates an existing comment
func (s *commentService) UpdateComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Comments.Authorize(caller, commentRef(comment), http.MethodPatch); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment deletes a comment
func (s *commentService) DeleteComment(ctx context.Context, caller policy.AuthContext, titleID, reviewID, commentID int64) error {
	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := policy.Comments.Authorize(caller, commentRef(comment), http.MethodDelete); err != nil {
		return err
	}
	return translate(s.commentRepo.Delete(ctx, comment.ID), ErrCommentNotFound, nil)
}

func commentRef(c *models.Comment) policy.ResourceRef {
	return policy.ResourceRef{Kind: policy.KindComment, ID: strconv.FormatInt(c.ID, 10)}.WithOwner(c.AuthorID)
}
