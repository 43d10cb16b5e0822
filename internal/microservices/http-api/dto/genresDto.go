package dto

import "yamdb/internal/microservices/http-api/models"

// CreateGenreDTO for POST /genres/
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=200"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}
