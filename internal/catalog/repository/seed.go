package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/pkg/logger"
)

var seedPlanets = []domain.Planet{
	{ID: 1, Name: "Tatooine", Climate: "arid", Terrain: "desert", Population: "200000", Diameter: "10465", RotationPeriod: "23", OrbitalPeriod: "304", Gravity: "1 standard"},
	{ID: 2, Name: "Alderaan", Climate: "temperate", Terrain: "grasslands, mountains", Population: "2000000000", Diameter: "12500", RotationPeriod: "24", OrbitalPeriod: "364", Gravity: "1 standard"},
	{ID: 3, Name: "Yavin IV", Climate: "temperate, tropical", Terrain: "jungle, rainforests", Population: "1000", Diameter: "10200", RotationPeriod: "24", OrbitalPeriod: "4818", Gravity: "1 standard"},
	{ID: 4, Name: "Hoth", Climate: "frozen", Terrain: "tundra, ice caves, mountain ranges", Population: "unknown", Diameter: "7200", RotationPeriod: "23", OrbitalPeriod: "549", Gravity: "1.1 standard"},
	{ID: 5, Name: "Dagobah", Climate: "murky", Terrain: "swamp, jungles", Population: "unknown", Diameter: "8900", RotationPeriod: "23", OrbitalPeriod: "341", Gravity: "N/A"},
}

var seedCharacters = []domain.Character{
	{ID: 1, Name: "Luke Skywalker", Gender: "male", BirthYear: "19BBY", Height: "172", Mass: "77", HairColor: "blond", EyeColor: "blue", SkinColor: "fair"},
	{ID: 2, Name: "C-3PO", Gender: "n/a", BirthYear: "112BBY", Height: "167", Mass: "75", HairColor: "n/a", EyeColor: "yellow", SkinColor: "gold"},
	{ID: 3, Name: "R2-D2", Gender: "n/a", BirthYear: "33BBY", Height: "96", Mass: "32", HairColor: "n/a", EyeColor: "red", SkinColor: "white, blue"},
	{ID: 4, Name: "Darth Vader", Gender: "male", BirthYear: "41.9BBY", Height: "202", Mass: "136", HairColor: "none", EyeColor: "yellow", SkinColor: "white"},
	{ID: 5, Name: "Leia Organa", Gender: "female", BirthYear: "19BBY", Height: "150", Mass: "49", HairColor: "brown", EyeColor: "brown", SkinColor: "light"},
}

var seedStarships = []domain.Starship{
	{ID: 1, Name: "CR90 corvette", Model: "CR90 corvette", Manufacturer: "Corellian Engineering Corporation", StarshipClass: "corvette", CostInCredits: "3500000", Length: "150", Crew: "30-165", Passengers: "600"},
	{ID: 2, Name: "Star Destroyer", Model: "Imperial I-class Star Destroyer", Manufacturer: "Kuat Drive Yards", StarshipClass: "Star Destroyer", CostInCredits: "150000000", Length: "1,600", Crew: "47,060", Passengers: "n/a"},
	{ID: 3, Name: "Sentinel-class landing craft", Model: "Sentinel-class landing craft", Manufacturer: "Sienar Fleet Systems, Cyngus Spaceworks", StarshipClass: "landing craft", CostInCredits: "240000", Length: "38", Crew: "5", Passengers: "75"},
	{ID: 4, Name: "Death Star", Model: "DS-1 Orbital Battle Station", Manufacturer: "Imperial Department of Military Research, Sienar Fleet Systems", StarshipClass: "Deep Space Mobile Battlestation", CostInCredits: "1000000000000", Length: "120000", Crew: "342,953", Passengers: "843,342"},
	{ID: 5, Name: "Millennium Falcon", Model: "YT-1300 light freighter", Manufacturer: "Corellian Engineering Corporation", StarshipClass: "Light freighter", CostInCredits: "100000", Length: "34.37", Crew: "4", Passengers: "6"},
}

// Seed inserts a small development catalog. Existing rows are left untouched.
func (r *GormCatalogRepository) Seed(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	skipExisting := clause.OnConflict{DoNothing: true}

	planets := append([]domain.Planet(nil), seedPlanets...)
	characters := append([]domain.Character(nil), seedCharacters...)
	starships := append([]domain.Starship(nil), seedStarships...)

	if err := db.Clauses(skipExisting).Create(&planets).Error; err != nil {
		return fmt.Errorf("failed to seed planets: %w", err)
	}
	if err := db.Clauses(skipExisting).Create(&characters).Error; err != nil {
		return fmt.Errorf("failed to seed characters: %w", err)
	}
	if err := db.Clauses(skipExisting).Create(&starships).Error; err != nil {
		return fmt.Errorf("failed to seed starships: %w", err)
	}

	logger.Info(ctx).
		Int("planets", len(planets)).
		Int("characters", len(characters)).
		Int("starships", len(starships)).
		Msg("Catalog seeded")
	return nil
}
