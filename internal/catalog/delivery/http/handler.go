package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/catalog/usecase/query"
	"github.com/tair/starwars-blog/internal/server"
	"github.com/tair/starwars-blog/pkg/logger"
)

// collectionPaths maps the public collection names to catalog kinds
var collectionPaths = map[string]domain.Kind{
	"/people":    domain.KindCharacter,
	"/planet":    domain.KindPlanet,
	"/starships": domain.KindStarship,
}

// CatalogHandler handles HTTP requests for the read-only catalog
type CatalogHandler struct {
	getHandler  *query.GetEntityHandler
	listHandler *query.ListEntitiesHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(repo domain.CatalogRepository) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		query.NewGetEntityHandler(repo),
		query.NewListEntitiesHandler(repo),
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler from its query handlers
func NewCatalogHandlerWithDI(getHandler *query.GetEntityHandler, listHandler *query.ListEntitiesHandler) *CatalogHandler {
	return &CatalogHandler{
		getHandler:  getHandler,
		listHandler: listHandler,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	for path, kind := range collectionPaths {
		router.HandleFunc(path, h.List(kind)).Methods(http.MethodGet)
		router.HandleFunc(path+"/{id}", h.Get(kind)).Methods(http.MethodGet)
	}
}

// List handles GET /people, /planet and /starships
func (h *CatalogHandler) List(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.listHandler.Handle(r.Context(), query.ListEntitiesQuery{Kind: kind})
		if err != nil {
			logger.Error(r.Context()).Err(err).Str("kind", kind.String()).Msg("Failed to list catalog")
			server.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		server.RespondJSON(w, http.StatusOK, server.Response{
			Success: true,
			Data:    items,
		})
	}
}

// Get handles GET /people/{id}, /planet/{id} and /starships/{id}
func (h *CatalogHandler) Get(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
		if err != nil {
			server.RespondError(w, http.StatusBadRequest, "Invalid id")
			return
		}

		entity, err := h.getHandler.Handle(r.Context(), query.GetEntityQuery{Kind: kind, ID: uint(id)})
		if err != nil {
			if errors.Is(err, domain.ErrEntityNotFound) {
				server.RespondError(w, http.StatusNotFound, kind.String()+" not found")
				return
			}
			logger.Error(r.Context()).Err(err).Str("kind", kind.String()).Uint64("id", id).Msg("Failed to get catalog entity")
			server.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		server.RespondJSON(w, http.StatusOK, server.Response{
			Success: true,
			Data:    entity.Serialize(),
		})
	}
}
