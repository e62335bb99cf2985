package domain

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User represents a blog reader. Accounts are managed outside this service.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Serialize returns the public representation of the user
func (u User) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"is_active": u.IsActive,
	}
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}
