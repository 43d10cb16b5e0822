package service

import (
	"context"
	"log/slog"

	"yamdb/internal/cache"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type TitleService interface {
	ListTitles(ctx context.Context, filter dto.TitleFilterQuery, page, pageSize int) (*dto.Page[dto.TitleResponse], error)
	GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error)
	CreateTitle(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	UpdateTitle(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	DeleteTitle(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
	ratings      cache.RatingCache
	log          *slog.Logger
}

// NewTitleService wires the title catalogue. A nil ratings cache disables caching.
func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	ratings cache.RatingCache,
	log *slog.Logger,
) TitleService {
	if ratings == nil {
		ratings = &cache.RedisRatingCache{}
	}
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
		ratings:      ratings,
		log:          log,
	}
}

func (s *titleService) ListTitles(ctx context.Context, filter dto.TitleFilterQuery, page, pageSize int) (*dto.Page[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.List(ctx, repository.TitleFilter{
		Category: filter.Category,
		Genre:    filter.Genre,
		Year:     filter.Year,
		Name:     filter.Name,
	}, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}
	ratings, err := s.titleRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		results = append(results, dto.TitleFromModel(&titles[i], ratings[titles[i].ID]))
	}
	return dto.NewPage(results, total, page, pageSize), nil
}

func (s *titleService) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	t, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrTitleNotFound, nil)
	}
	return s.respond(ctx, t)
}

func (s *titleService) CreateTitle(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	t := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}
	if err := s.setCategory(ctx, t, req.Category); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, t, genres); err != nil {
		return nil, err
	}
	return s.GetTitle(ctx, t.ID)
}

// UpdateTitle applies a partial update; genres are replaced only when given.
func (s *titleService) UpdateTitle(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	t, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrTitleNotFound, nil)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, invalidf("name may not be blank")
		}
		t.Name = *req.Name
	}
	if req.Year != nil {
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		if err := s.setCategory(ctx, t, *req.Category); err != nil {
			return nil, err
		}
	}

	var genres []models.Genre
	if req.Genre != nil {
		if genres, err = s.resolveGenres(ctx, *req.Genre); err != nil {
			return nil, err
		}
		if genres == nil {
			genres = []models.Genre{}
		}
	}

	if err := s.titleRepo.Update(ctx, t, genres); err != nil {
		return nil, err
	}
	return s.GetTitle(ctx, id)
}

func (s *titleService) DeleteTitle(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrTitleNotFound, nil)
	}
	s.invalidateRating(ctx, id)
	return nil
}

// setCategory points t at the category with the given slug; an empty slug clears it.
func (s *titleService) setCategory(ctx context.Context, t *models.Title, slug string) error {
	if slug == "" {
		t.CategoryID = nil
		t.Category = nil
		return nil
	}

	c, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return translate(err, invalidf("category %q does not exist", slug), nil)
	}
	t.CategoryID = &c.ID
	t.Category = c
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	seen := make(map[string]bool, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range unique {
			if !found[slug] {
				return nil, invalidf("genre %q does not exist", slug)
			}
		}
	}
	return genres, nil
}

func (s *titleService) respond(ctx context.Context, t *models.Title) (*dto.TitleResponse, error) {
	ratings, err := s.titleRatings(ctx, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	resp := dto.TitleFromModel(t, ratings[t.ID])
	return &resp, nil
}

// titleRatings returns the rating of every title, reading through the cache.
func (s *titleService) titleRatings(ctx context.Context, ids []int64) (map[int64]*float64, error) {
	ratings := make(map[int64]*float64, len(ids))

	var misses []int64
	for _, id := range ids {
		rating, ok, err := s.ratings.Get(ctx, id)
		if err != nil {
			s.log.WarnContext(ctx, "rating cache read failed", "title_id", id, "error", err)
		}
		if err == nil && ok {
			ratings[id] = rating
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return ratings, nil
	}

	scores, err := s.reviewRepo.ScoresByTitles(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, id := range misses {
		rating := AverageScore(scores[id])
		ratings[id] = rating
		if err := s.ratings.Set(ctx, id, rating); err != nil {
			s.log.WarnContext(ctx, "rating cache write failed", "title_id", id, "error", err)
		}
	}
	return ratings, nil
}

func (s *titleService) invalidateRating(ctx context.Context, id int64) {
	if err := s.ratings.Invalidate(ctx, id); err != nil {
		s.log.WarnContext(ctx, "rating cache invalidation failed", "title_id", id, "error", err)
	}
}
