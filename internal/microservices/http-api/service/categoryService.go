package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.CategoryResponse], error)
	GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.CategoryResponse], error) {
	categories, total, err := s.repo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		results = append(results, dto.CategoryFromModel(c))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *categoryService) GetCategory(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound, nil)
	}
	resp := dto.CategoryFromModel(*c)
	return &resp, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, ErrCategoryExists
	}

	c := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, translate(err, nil, ErrCategoryExists)
	}

	resp := dto.CategoryFromModel(*c)
	return &resp, nil
}

// DeleteCategory removes a category; its titles are kept without a category.
func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	return translate(s.repo.Delete(ctx, slug), ErrCategoryNotFound, nil)
}
