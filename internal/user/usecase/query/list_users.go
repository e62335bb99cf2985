package query

import (
	"context"
	"fmt"

	"github.com/tair/starwars-blog/internal/user/domain"
)

// ListUsersQuery represents the query to list all users
type ListUsersQuery struct{}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query and returns public representations
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]map[string]interface{}, error) {
	users, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		items = append(items, u.Serialize())
	}
	return items, nil
}
