package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/starwars-blog/internal/user/domain"
)

// CreateUserCommand represents the command to create a user
type CreateUserCommand struct {
	Email    string
	Username string
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	// Validation
	email := strings.TrimSpace(cmd.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}

	user := &domain.User{
		Email:    email,
		Username: username,
		IsActive: true,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
