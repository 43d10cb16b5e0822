package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// MeAlias is the reserved username that resolves to the requester.
const MeAlias = "me"

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username  *string   `gorm:"uniqueIndex;size:150" json:"username"` // nullable: users created by code redemption have none
	FirstName string    `gorm:"size:200" json:"first_name"`
	LastName  string    `gorm:"size:200" json:"last_name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Password  string    `gorm:"column:password_hash;not null;default:''" json:"-"`
	Role      Role      `gorm:"size:10;default:'user';not null" json:"role"`
	IsActive  bool      `gorm:"default:true;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

// UsernameOrNil returns the username as a JSON-friendly pointer.
func (user *User) UsernameOrNil() *string {
	if user == nil {
		return nil
	}
	return user.Username
}
