package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CreateReviewDTO for POST /titles/:title_id/reviews/
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for PATCH; the title and author never change
type UpdateReviewDTO struct {
	Text  *string `json:"text" binding:"omitempty,min=1"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  *string   `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
	Title   int64     `json:"title"`
}

func ReviewFromModel(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.UsernameOrNil(),
		Score:   r.Score,
		PubDate: r.PubDate,
		Title:   r.TitleID,
	}
}
