package dto

import (
	"time"

	"yamdb/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Text *string `json:"text" binding:"omitempty,min=1"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Author  *string   `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model with its author loaded
func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.UsernameOrNil(),
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}
