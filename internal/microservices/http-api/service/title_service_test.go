package service

import (
	"errors"
	"testing"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type titleFixture struct {
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
	reviews    *MockReviewRepository
	ratings    *MockRatingCache
	service    TitleService
}

func newTitleFixture() *titleFixture {
	f := &titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
		reviews:    new(MockReviewRepository),
		ratings:    new(MockRatingCache),
	}
	f.service = NewTitleService(f.titles, f.categories, f.genres, f.reviews, f.ratings, discardLogger())
	return f
}

func ratingPtr(v float64) *float64 { return &v }

func TestGetTitle_RatingFromCache(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(1)).Return(&models.Title{ID: 1, Name: "Alien"}, nil)
	f.ratings.On("Get", ctx, int64(1)).Return(ratingPtr(7.5), true, nil)

	resp, err := f.service.GetTitle(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 7.5, *resp.Rating)
	assert.Empty(t, resp.Genre)
	assert.Nil(t, resp.Category)
	f.reviews.AssertNotCalled(t, "ScoresByTitles", mock.Anything, mock.Anything)
}

func TestGetTitle_RatingComputedOnMiss(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(1)).Return(&models.Title{ID: 1}, nil)
	f.ratings.On("Get", ctx, int64(1)).Return(nil, false, nil)
	f.reviews.On("ScoresByTitles", ctx, []int64{1}).Return(map[int64][]int{1: {7, 10}}, nil)
	f.ratings.On("Set", ctx, int64(1), ratingPtr(8.5)).Return(nil)

	resp, err := f.service.GetTitle(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 8.5, *resp.Rating)
	f.ratings.AssertExpectations(t)
}

func TestGetTitle_CacheErrorFallsBack(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(1)).Return(&models.Title{ID: 1}, nil)
	f.ratings.On("Get", ctx, int64(1)).Return(nil, false, errors.New("redis down"))
	f.reviews.On("ScoresByTitles", ctx, []int64{1}).Return(map[int64][]int{}, nil)
	f.ratings.On("Set", ctx, int64(1), (*float64)(nil)).Return(errors.New("redis down"))

	resp, err := f.service.GetTitle(ctx, 1)

	require.NoError(t, err)
	assert.Nil(t, resp.Rating)
}

func TestGetTitle_NotFound(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.GetTitle(ctx, 9)

	assert.Equal(t, ErrTitleNotFound, err)
}

func TestListTitles_PassesFilter(t *testing.T) {
	f := newTitleFixture()
	year := 1979

	f.titles.On("List", ctx, repository.TitleFilter{Genre: "hor", Year: &year}, 1, 10).
		Return([]models.Title{{ID: 1}, {ID: 2}}, int64(2), nil)
	f.ratings.On("Get", ctx, int64(1)).Return(ratingPtr(6), true, nil)
	f.ratings.On("Get", ctx, int64(2)).Return(nil, false, nil)
	f.reviews.On("ScoresByTitles", ctx, []int64{2}).Return(map[int64][]int{}, nil)
	f.ratings.On("Set", ctx, int64(2), (*float64)(nil)).Return(nil)

	page, err := f.service.ListTitles(ctx, dto.TitleFilterQuery{Genre: "hor", Year: &year}, 1, 10)

	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 6.0, *page.Results[0].Rating)
	assert.Nil(t, page.Results[1].Rating)
}

func TestCreateTitle_ResolvesSlugs(t *testing.T) {
	f := newTitleFixture()
	films := &models.Category{ID: 3, Name: "Films", Slug: "films"}
	drama := models.Genre{ID: 5, Name: "Drama", Slug: "drama"}

	f.categories.On("GetBySlug", ctx, "films").Return(films, nil)
	f.genres.On("GetBySlugs", ctx, []string{"drama"}).Return([]models.Genre{drama}, nil)
	f.titles.On("Create", ctx, mock.MatchedBy(func(t *models.Title) bool {
		return *t.CategoryID == 3 && t.Name == "Alien"
	}), []models.Genre{drama}).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 11
	}).Return(nil)
	f.titles.On("GetByID", ctx, int64(11)).Return(&models.Title{ID: 11, Name: "Alien", Category: films, Genres: []models.Genre{drama}}, nil)
	f.ratings.On("Get", ctx, int64(11)).Return(nil, true, nil)

	resp, err := f.service.CreateTitle(ctx, dto.CreateTitleDTO{
		Name:     "Alien",
		Year:     1979,
		Category: "films",
		Genre:    []string{"drama", "drama"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "films", resp.Category.Slug)
	assert.Nil(t, resp.Rating)
	f.titles.AssertExpectations(t)
}

func TestCreateTitle_UnknownSlugs(t *testing.T) {
	f := newTitleFixture()

	f.categories.On("GetBySlug", ctx, "films").Return(nil, gorm.ErrRecordNotFound)
	_, err := f.service.CreateTitle(ctx, dto.CreateTitleDTO{Name: "Alien", Year: 1979, Category: "films"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.genres.On("GetBySlugs", ctx, []string{"drama", "space"}).Return([]models.Genre{{ID: 5, Slug: "drama"}}, nil)
	_, err = f.service.CreateTitle(ctx, dto.CreateTitleDTO{Name: "Alien", Year: 1979, Genre: []string{"drama", "space"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "space")

	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitle_ClearsGenres(t *testing.T) {
	f := newTitleFixture()
	categoryID := int64(3)

	f.titles.On("GetByID", ctx, int64(1)).Return(&models.Title{ID: 1, Name: "Alien", CategoryID: &categoryID}, nil)
	f.titles.On("Update", ctx, mock.MatchedBy(func(t *models.Title) bool {
		return t.CategoryID == nil && t.Name == "Aliens"
	}), []models.Genre{}).Return(nil)
	f.ratings.On("Get", ctx, int64(1)).Return(nil, true, nil)

	empty := []string{}
	_, err := f.service.UpdateTitle(ctx, 1, dto.UpdateTitleDTO{
		Name:     strPtr("Aliens"),
		Category: strPtr(""),
		Genre:    &empty,
	})

	require.NoError(t, err)
	f.titles.AssertExpectations(t)
}

func TestUpdateTitle_KeepsGenresWhenOmitted(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(1)).Return(&models.Title{ID: 1, Name: "Alien"}, nil)
	f.titles.On("Update", ctx, mock.AnythingOfType("*models.Title"), []models.Genre(nil)).Return(nil)
	f.ratings.On("Get", ctx, int64(1)).Return(nil, true, nil)

	_, err := f.service.UpdateTitle(ctx, 1, dto.UpdateTitleDTO{Description: strPtr("In space")})
	require.NoError(t, err)

	_, err = f.service.UpdateTitle(ctx, 1, dto.UpdateTitleDTO{Name: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteTitle(t *testing.T) {
	f := newTitleFixture()

	f.titles.On("Delete", ctx, int64(1)).Return(nil)
	f.ratings.On("Invalidate", ctx, []int64{1}).Return(nil)
	f.titles.On("Delete", ctx, int64(2)).Return(gorm.ErrRecordNotFound)

	assert.NoError(t, f.service.DeleteTitle(ctx, 1))
	assert.Equal(t, ErrTitleNotFound, f.service.DeleteTitle(ctx, 2))
	f.ratings.AssertExpectations(t)
}

func TestAverageScore(t *testing.T) {
	assert.Nil(t, AverageScore(nil))
	assert.Equal(t, 5.0, *AverageScore([]int{5}))
	assert.InDelta(t, 6.6667, *AverageScore([]int{5, 5, 10}), 0.0001)
}
