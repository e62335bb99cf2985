package http

// ListPeople godoc
// @Summary List characters
// @Description List every character in the catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=[]object{id=int,name=string,gender=string,birth_year=string,height=string,mass=string,hair_color=string,eye_color=string,skin_color=string}}
// @Router /people [get]
func (h *CatalogHandler) ListPeopleDoc() {}

// GetPerson godoc
// @Summary Get a character
// @Tags Catalog
// @Produce json
// @Param id path int true "Character ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /people/{id} [get]
func (h *CatalogHandler) GetPersonDoc() {}

// ListPlanets godoc
// @Summary List planets
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=[]object{id=int,name=string,climate=string,terrain=string,population=string,diameter=string,gravity=string}}
// @Router /planet [get]
func (h *CatalogHandler) ListPlanetsDoc() {}

// GetPlanet godoc
// @Summary Get a planet
// @Tags Catalog
// @Produce json
// @Param id path int true "Planet ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /planet/{id} [get]
func (h *CatalogHandler) GetPlanetDoc() {}

// ListStarships godoc
// @Summary List starships
// @Tags Catalog
// @Produce json
// @Success 200 {object} object{success=bool,data=[]object{id=int,name=string,model=string,manufacturer=string,starship_class=string,crew=string,passengers=string,length=string}}
// @Router /starships [get]
func (h *CatalogHandler) ListStarshipsDoc() {}

// GetStarship godoc
// @Summary Get a starship
// @Tags Catalog
// @Produce json
// @Param id path int true "Starship ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /starships/{id} [get]
func (h *CatalogHandler) GetStarshipDoc() {}
