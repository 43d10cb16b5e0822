package service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"yamdb/internal/cache"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
)

type ReviewService interface {
	ListReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.Page[dto.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	CreateReview(ctx context.Context, caller policy.AuthContext, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	ratings    cache.RatingCache
	log        *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	ratings cache.RatingCache,
	log *slog.Logger,
) ReviewService {
	if ratings == nil {
		ratings = &cache.RedisRatingCache{}
	}
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		ratings:    ratings,
		log:        log,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTitleNotFound
	}
	return nil
}

// ListReviews returns the reviews of a title, newest first
func (s *reviewService) ListReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.Page[dto.ReviewResponse], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, dto.ReviewFromModel(&reviews[i]))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *reviewService) load(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, translate(err, ErrReviewNotFound, nil)
	}
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.load(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

// CreateReview adds the caller's review; each user reviews a title at most once.
func (s *reviewService) CreateReview(ctx context.Context, caller policy.AuthContext, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForAuthor(ctx, titleID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: caller.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, translate(err, nil, ErrDuplicateReview)
	}
	s.invalidateRating(ctx, titleID)

	return s.GetReview(ctx, titleID, review.ID)
}

func (s *reviewService) UpdateReview(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.load(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := policy.Reviews.Authorize(caller, reviewRef(review), http.MethodPatch); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	if req.Score != nil {
		s.invalidateRating(ctx, titleID)
	}

	resp := dto.ReviewFromModel(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, caller policy.AuthContext, titleID, reviewID int64) error {
	review, err := s.load(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := policy.Reviews.Authorize(caller, reviewRef(review), http.MethodDelete); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return translate(err, ErrReviewNotFound, nil)
	}
	s.invalidateRating(ctx, titleID)
	return nil
}

func reviewRef(r *models.Review) policy.ResourceRef {
	return policy.ResourceRef{Kind: policy.KindReview, ID: strconv.FormatInt(r.ID, 10)}.WithOwner(r.AuthorID)
}

func (s *reviewService) invalidateRating(ctx context.Context, titleID int64) {
	if err := s.ratings.Invalidate(ctx, titleID); err != nil {
		s.log.WarnContext(ctx, "rating cache invalidation failed", "title_id", titleID, "error", err)
	}
}
