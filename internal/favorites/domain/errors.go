package domain

import "errors"

var (
	// ErrDuplicateFavorite is returned when the entity is already in the user's favorites.
	ErrDuplicateFavorite = errors.New("favorite already exists")
	// ErrFavoriteNotFound is returned when removing an entity that is not a favorite.
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrFavoritesNotFound means the user has no favorites collection yet.
	ErrFavoritesNotFound = errors.New("favorites not found")
	// ErrConflict reports a unique index violation in the store.
	ErrConflict = errors.New("favorites store conflict")
)
