package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ExistsForAuthor(ctx context.Context, titleID int64, authorID string) (bool, error)
	GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	ScoresByTitles(ctx context.Context, titleIDs []int64) (map[int64][]int, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// Update an existing review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(review).Error; err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete a review and its comments
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete review comments: %w", err)
		}
		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a review that belongs to the given title
func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ExistsForAuthor reports whether the author already reviewed the title
func (r *reviewRepository) ExistsForAuthor(ctx context.Context, titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return count > 0, nil
}

// GetByTitle retrieves the reviews of a title, newest first, with pagination
func (r *reviewRepository) GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	err := db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC, id DESC").
		Limit(pageSize).
		Offset(offset(page, pageSize)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

// ScoresByTitles fetches every review score of the given titles, grouped by title.
// Titles without reviews are absent from the map.
func (r *reviewRepository) ScoresByTitles(ctx context.Context, titleIDs []int64) (map[int64][]int, error) {
	scores := make(map[int64][]int, len(titleIDs))
	if len(titleIDs) == 0 {
		return scores, nil
	}

	var rows []struct {
		TitleID int64
		Score   int
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, score").
		Where("title_id IN ?", titleIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get review scores: %w", err)
	}

	for _, row := range rows {
		scores[row.TitleID] = append(scores[row.TitleID], row.Score)
	}
	return scores, nil
}
