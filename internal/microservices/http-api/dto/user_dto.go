package dto

import "yamdb/internal/microservices/http-api/models"

// CreateUserRequest for POST /users/
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,max=150"`
	Email     string      `json:"email" binding:"required,max=255"`
	FirstName string      `json:"first_name" binding:"max=200"`
	LastName  string      `json:"last_name" binding:"max=200"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// UpdateUserRequest for PATCH /users/:username/; nil fields are left untouched
type UpdateUserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,max=150"`
	Email     *string      `json:"email" binding:"omitempty,max=255"`
	FirstName *string      `json:"first_name" binding:"omitempty,max=200"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=200"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role"`
}

type UserResponse struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Username  *string     `json:"username"`
	Bio       string      `json:"bio"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Bio:       u.Bio,
		Email:     u.Email,
		Role:      u.Role,
	}
}
