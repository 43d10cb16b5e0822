package dto

import "yamdb/internal/microservices/http-api/models"

// CreateTitleDTO for POST /titles/. Category and genres are given by slug.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"max=50"`
	Genre       []string `json:"genre" binding:"dive,max=50"`
}

// UpdateTitleDTO for PATCH /titles/:title_id/. An empty category clears it.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=200"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,max=50"`
	Genre       *[]string `json:"genre"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleFromModel converts a Title with its preloaded associations
func TitleFromModel(t *models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}

// TitleFilterQuery binds the listing filters of GET /titles/
type TitleFilterQuery struct {
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Year     *int   `form:"year"`
	Name     string `form:"name"`
}
