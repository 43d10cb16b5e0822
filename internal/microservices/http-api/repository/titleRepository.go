package repository

import (
	"context"
	"fmt"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleFilter narrows title listings. Zero values disable a filter.
type TitleFilter struct {
	Category string // substring of the category slug, case-insensitive
	Genre    string // substring of any genre slug, case-insensitive
	Year     *int
	Name     string // exact
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, t *models.Title, genres []models.Genre) error
	Update(ctx context.Context, t *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (f TitleFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Category != "" {
		db = db.Where("titles.category_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.Category{}).Select("id").Where(fmt.Sprintf(likeClause, "slug"), likePattern(f.Category)))
	}
	if f.Genre != "" {
		db = db.Where("titles.id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Table("title_genres").
				Select("title_genres.title_id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where(fmt.Sprintf(likeClause, "genres.slug"), likePattern(f.Genre)))
	}
	if f.Year != nil {
		db = db.Where("titles.year = ?", *f.Year)
	}
	if f.Name != "" {
		db = db.Where("titles.name = ?", f.Name)
	}
	return db
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Title{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}
	if err := db.Model(&models.Title{}).
		Scopes(filter.scope).
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset(page, pageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).Preload("Category").Preload("Genres").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

// Create inserts the title and links it to genres.
func (r *titleRepository) Create(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		return replaceGenres(tx, t, genres)
	})
}

// Update saves the scalar fields of t. A nil genres slice leaves the links untouched.
func (r *titleRepository) Update(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return fmt.Errorf("update title: %w", err)
		}
		if genres == nil {
			return nil
		}
		return replaceGenres(tx, t, genres)
	})
}

func replaceGenres(tx *gorm.DB, t *models.Title, genres []models.Genre) error {
	if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", t.ID).Error; err != nil {
		return fmt.Errorf("clear title genres: %w", err)
	}
	for _, g := range genres {
		if err := tx.Exec("INSERT INTO title_genres (title_id, genre_id) VALUES (?, ?)", t.ID, g.ID).Error; err != nil {
			return fmt.Errorf("link genre %s: %w", g.Slug, err)
		}
	}
	t.Genres = genres
	return nil
}

// Delete removes the title with its genre links, reviews and their comments.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&models.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete title comments: %w", err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete title reviews: %w", err)
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlink title genres: %w", err)
		}
		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete title: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
