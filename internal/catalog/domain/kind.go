package domain

import (
	"fmt"
	"strings"
)

// Kind discriminates the three catalog entity types.
type Kind string

const (
	KindPlanet    Kind = "planet"
	KindCharacter Kind = "character"
	KindStarship  Kind = "starship"
)

// Kinds lists every catalog kind in view order.
var Kinds = []Kind{KindPlanet, KindCharacter, KindStarship}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPlanet, KindCharacter, KindStarship:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a kind name or URL segment ("people", "planets", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planet", "planets":
		return KindPlanet, nil
	case "character", "characters", "people", "person":
		return KindCharacter, nil
	case "starship", "starships":
		return KindStarship, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}
