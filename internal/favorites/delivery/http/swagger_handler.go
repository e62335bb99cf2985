package http

// GetFavorites godoc
// @Summary Get the current user's favorites
// @Description Favorites grouped by catalog kind. Entries whose catalog entity was removed are left out.
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{user_id=int,planets=[]object,characters=[]object,starships=[]object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /users/favorites [get]
func (h *FavoritesHandler) GetFavoritesDoc() {}

// AddFavorite godoc
// @Summary Add a catalog entity to the current user's favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Catalog kind" Enums(planet, people, starship)
// @Param id path int true "Entity ID"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string} "Unknown entity, duplicate favorite or invalid id"
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string} "Unknown user"
// @Router /favorite/{kind}/{id} [post]
func (h *FavoritesHandler) AddFavoriteDoc() {}

// RemoveFavorite godoc
// @Summary Remove a catalog entity from the current user's favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Catalog kind" Enums(planet, people, starship)
// @Param id path int true "Entity ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string} "Unknown user or not a favorite"
// @Router /favorite/{kind}/{id} [delete]
func (h *FavoritesHandler) RemoveFavoriteDoc() {}
