package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/testutil"
)

func TestGetEntity(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormCatalogRepository(db)
	ctx := context.Background()

	testutil.CreatePlanet(t, db, 5, "Dagobah")
	testutil.CreateCharacter(t, db, 5, "Leia Organa")

	planet, err := repo.GetEntity(ctx, domain.KindPlanet, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.KindPlanet, planet.EntityKind())
	assert.Equal(t, "Dagobah", planet.Serialize()["name"])

	character, err := repo.GetEntity(ctx, domain.KindCharacter, 5)
	require.NoError(t, err)
	assert.Equal(t, "Leia Organa", character.Serialize()["name"])

	_, err = repo.GetEntity(ctx, domain.KindStarship, 5)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	_, err = repo.GetEntity(ctx, domain.Kind("vehicle"), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestListEntitiesOrderedByID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormCatalogRepository(db)

	testutil.CreateStarship(t, db, 3, "Sentinel")
	testutil.CreateStarship(t, db, 1, "CR90 corvette")

	starships, err := repo.ListEntities(context.Background(), domain.KindStarship)
	require.NoError(t, err)
	require.Len(t, starships, 2)
	assert.Equal(t, uint(1), starships[0].EntityID())
	assert.Equal(t, uint(3), starships[1].EntityID())

	planets, err := repo.ListEntities(context.Background(), domain.KindPlanet)
	require.NoError(t, err)
	assert.Empty(t, planets)
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormCatalogRepository(db)

	testutil.CreatePlanet(t, db, 1, "Tatooine")
	testutil.CreatePlanet(t, db, 2, "Alderaan")

	found, err := repo.FindByIDs(context.Background(), domain.KindPlanet, []uint{1, 2, 99})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, uint(1))
	assert.NotContains(t, found, uint(99))

	empty, err := repo.FindByIDs(context.Background(), domain.KindPlanet, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSeedIsRepeatable(t *testing.T) {
	repo := NewGormCatalogRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))
	require.NoError(t, repo.Seed(ctx))

	for _, kind := range domain.Kinds {
		entities, err := repo.ListEntities(ctx, kind)
		require.NoError(t, err)
		assert.Len(t, entities, 5, kind)
	}

	dagobah, err := repo.GetEntity(ctx, domain.KindPlanet, 5)
	require.NoError(t, err)
	assert.Equal(t, "Dagobah", dagobah.Serialize()["name"])
}
