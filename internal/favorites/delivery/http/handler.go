package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/internal/favorites/usecase/command"
	"github.com/tair/starwars-blog/internal/favorites/usecase/query"
	"github.com/tair/starwars-blog/internal/server"
	userhttp "github.com/tair/starwars-blog/internal/user/delivery/http"
	user "github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

// favoritePaths maps the path segment of /favorite/{segment}/{id} to a catalog kind
var favoritePaths = map[string]catalog.Kind{
	"planet":   catalog.KindPlanet,
	"people":   catalog.KindCharacter,
	"starship": catalog.KindStarship,
}

// FavoritesHandler handles HTTP requests for user favorites
type FavoritesHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	viewHandler   *query.GetFavoritesViewHandler

	metrics  *Metrics
	identity userhttp.IdentityMiddleware
}

// NewFavoritesHandlerWithDI creates a new favorites handler using dependency injection
func NewFavoritesHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	viewHandler *query.GetFavoritesViewHandler,
	metrics *Metrics,
	identity userhttp.IdentityMiddleware,
) *FavoritesHandler {
	return &FavoritesHandler{
		addHandler:    addHandler,
		removeHandler: removeHandler,
		viewHandler:   viewHandler,
		metrics:       metrics,
		identity:      identity,
	}
}

// RegisterRoutes registers favorites routes behind the identity middleware
func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	protected := router.NewRoute().Subrouter()
	protected.Use(mux.MiddlewareFunc(h.identity))

	protected.HandleFunc("/users/favorites", h.GetFavorites).Methods(http.MethodGet)
	for segment, kind := range favoritePaths {
		protected.HandleFunc("/favorite/"+segment+"/{id}", h.AddFavorite(kind)).Methods(http.MethodPost)
		protected.HandleFunc("/favorite/"+segment+"/{id}", h.RemoveFavorite(kind)).Methods(http.MethodDelete)
	}
}

// GetFavorites handles GET /users/favorites
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := userhttp.UserIDFromContext(r.Context())

	view, err := h.viewHandler.Handle(r.Context(), query.GetFavoritesViewQuery{UserID: userID})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	server.RespondJSON(w, http.StatusOK, server.Response{
		Success: true,
		Data:    view,
	})
}

// AddFavorite handles POST /favorite/{planet|people|starship}/{id}
func (h *FavoritesHandler) AddFavorite(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID, ok := parseID(w, r)
		if !ok {
			return
		}
		userID, _ := userhttp.UserIDFromContext(r.Context())

		entity, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
			UserID:   userID,
			Kind:     kind,
			EntityID: entityID,
		})
		if err != nil {
			h.respondDomainError(w, r, err)
			return
		}

		h.metrics.favoriteAdded(kind.String())
		logger.Info(r.Context()).
			Uint("user_id", userID).
			Str("kind", kind.String()).
			Uint("entity_id", entityID).
			Msg("Favorite added")

		server.RespondJSON(w, http.StatusCreated, server.Response{
			Success: true,
			Message: "Favorite added",
			Data:    entity.Serialize(),
		})
	}
}

// RemoveFavorite handles DELETE /favorite/{planet|people|starship}/{id}
func (h *FavoritesHandler) RemoveFavorite(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID, ok := parseID(w, r)
		if !ok {
			return
		}
		userID, _ := userhttp.UserIDFromContext(r.Context())

		err := h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
			UserID:   userID,
			Kind:     kind,
			EntityID: entityID,
		})
		if err != nil {
			h.respondDomainError(w, r, err)
			return
		}

		h.metrics.favoriteRemoved(kind.String())
		logger.Info(r.Context()).
			Uint("user_id", userID).
			Str("kind", kind.String()).
			Uint("entity_id", entityID).
			Msg("Favorite removed")

		server.RespondJSON(w, http.StatusOK, server.Response{
			Success: true,
			Message: "Favorite removed",
		})
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		server.RespondError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondDomainError maps favorites errors to HTTP statuses
func (h *FavoritesHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		server.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrEntityNotFound),
		errors.Is(err, catalog.ErrInvalidKind),
		errors.Is(err, domain.ErrDuplicateFavorite):
		server.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Favorites request failed")
		server.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
