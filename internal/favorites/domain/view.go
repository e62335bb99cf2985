package domain

import (
	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
)

// FavoritesView is the aggregated list of a user's favorites, one sequence per kind.
type FavoritesView struct {
	UserID     uint                     `json:"user_id"`
	Planets    []map[string]interface{} `json:"planets"`
	Characters []map[string]interface{} `json:"characters"`
	Starships  []map[string]interface{} `json:"starships"`
}

// NewFavoritesView returns a view with three empty, non-nil sequences.
func NewFavoritesView(userID uint) *FavoritesView {
	return &FavoritesView{
		UserID:     userID,
		Planets:    []map[string]interface{}{},
		Characters: []map[string]interface{}{},
		Starships:  []map[string]interface{}{},
	}
}

// Add appends the representation of an entity to the sequence of its kind.
func (v *FavoritesView) Add(entity catalog.Entity) {
	repr := entity.Serialize()
	switch entity.EntityKind() {
	case catalog.KindPlanet:
		v.Planets = append(v.Planets, repr)
	case catalog.KindCharacter:
		v.Characters = append(v.Characters, repr)
	case catalog.KindStarship:
		v.Starships = append(v.Starships, repr)
	}
}

// Items returns the sequence holding entities of kind.
func (v *FavoritesView) Items(kind catalog.Kind) []map[string]interface{} {
	switch kind {
	case catalog.KindPlanet:
		return v.Planets
	case catalog.KindCharacter:
		return v.Characters
	case catalog.KindStarship:
		return v.Starships
	}
	return nil
}

// Len returns the number of favorites across all kinds.
func (v *FavoritesView) Len() int {
	return len(v.Planets) + len(v.Characters) + len(v.Starships)
}
