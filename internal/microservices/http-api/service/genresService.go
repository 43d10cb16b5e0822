package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type GenreService interface {
	ListGenres(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.GenreResponse], error)
	GetGenre(ctx context.Context, slug string) (*dto.GenreResponse, error)
	CreateGenre(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) ListGenres(ctx context.Context, search string, page, pageSize int) (*dto.Page[dto.GenreResponse], error) {
	genres, total, err := s.repo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	results := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		results = append(results, dto.GenreFromModel(g))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *genreService) GetGenre(ctx context.Context, slug string) (*dto.GenreResponse, error) {
	g, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, ErrGenreNotFound, nil)
	}
	resp := dto.GenreFromModel(*g)
	return &resp, nil
}

func (s *genreService) CreateGenre(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, ErrGenreExists
	}

	g := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, translate(err, nil, ErrGenreExists)
	}

	resp := dto.GenreFromModel(*g)
	return &resp, nil
}

// DeleteGenre removes a genre and unlinks it from its titles.
func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	return translate(s.repo.Delete(ctx, slug), ErrGenreNotFound, nil)
}
