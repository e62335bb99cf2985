package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/starwars-blog/internal/server"
	"github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/internal/user/usecase/query"
	"github.com/tair/starwars-blog/pkg/logger"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	listHandler *query.ListUsersHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return NewUserHandlerWithDI(query.NewListUsersHandler(repo))
}

// NewUserHandlerWithDI creates a new user handler using dependency injection
func NewUserHandlerWithDI(listHandler *query.ListUsersHandler) *UserHandler {
	return &UserHandler{listHandler: listHandler}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/user", h.ListUsers).Methods(http.MethodGet)
}

// ListUsers handles GET /user
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		server.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	server.RespondJSON(w, http.StatusOK, server.Response{
		Success: true,
		Data:    users,
	})
}
