package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/starwars-blog/internal/catalog/domain"
	catalogrepo "github.com/tair/starwars-blog/internal/catalog/repository"
	"github.com/tair/starwars-blog/internal/favorites/cache"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/internal/favorites/repository"
	"github.com/tair/starwars-blog/internal/testutil"
	user "github.com/tair/starwars-blog/internal/user/domain"
	userrepo "github.com/tair/starwars-blog/internal/user/repository"
)

func ids(items []map[string]interface{}) []uint {
	out := make([]uint, 0, len(items))
	for _, item := range items {
		out = append(out, testutil.NumberAsUint(item["id"]))
	}
	return out
}

func TestGetFavoritesViewEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, 1)
	repo := repository.NewGormFavoritesRepository(db)
	handler := NewGetFavoritesViewHandler(repo, userrepo.NewGormUserRepository(db), catalogrepo.NewGormCatalogRepository(db), cache.NoopViewCache{})

	view, err := handler.Handle(context.Background(), GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.UserID)
	assert.NotNil(t, view.Planets)
	assert.NotNil(t, view.Characters)
	assert.NotNil(t, view.Starships)
	assert.Zero(t, view.Len())

	// viewing never creates the collection
	_, err = repo.FindFavorites(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrFavoritesNotFound)
}

func TestGetFavoritesViewUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	handler := NewGetFavoritesViewHandler(
		repository.NewGormFavoritesRepository(db),
		userrepo.NewGormUserRepository(db),
		catalogrepo.NewGormCatalogRepository(db),
		cache.NoopViewCache{},
	)

	_, err := handler.Handle(context.Background(), GetFavoritesViewQuery{UserID: 3})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestGetFavoritesViewGroupsByKind(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	testutil.CreateUser(t, db, 1)
	testutil.CreatePlanet(t, db, 5, "Dagobah")
	testutil.CreatePlanet(t, db, 1, "Tatooine")
	testutil.CreateCharacter(t, db, 5, "Leia Organa")

	repo := repository.NewGormFavoritesRepository(db)
	favorites, err := repo.GetOrCreateFavorites(ctx, 1)
	require.NoError(t, err)
	for _, e := range []struct {
		kind catalog.Kind
		id   uint
	}{
		{catalog.KindPlanet, 5},
		{catalog.KindPlanet, 1},
		{catalog.KindCharacter, 5},
	} {
		_, err := repo.InsertEntry(ctx, favorites.ID, e.kind, e.id)
		require.NoError(t, err)
	}

	handler := NewGetFavoritesViewHandler(repo, userrepo.NewGormUserRepository(db), catalogrepo.NewGormCatalogRepository(db), cache.NoopViewCache{})
	view, err := handler.Handle(ctx, GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{5, 1}, ids(view.Planets))
	assert.Equal(t, []uint{5}, ids(view.Characters))
	assert.Equal(t, "Leia Organa", view.Characters[0]["name"])
	assert.Empty(t, view.Starships)
}

// Entries pointing at entities deleted from the catalog are silently dropped
// from the view; they stay in the store until purged.
func TestGetFavoritesViewSkipsOrphans(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	testutil.CreateUser(t, db, 1)
	testutil.CreateStarship(t, db, 9, "Death Star")
	testutil.CreateStarship(t, db, 5, "Millennium Falcon")

	repo := repository.NewGormFavoritesRepository(db)
	favorites, err := repo.GetOrCreateFavorites(ctx, 1)
	require.NoError(t, err)
	for _, id := range []uint{9, 5} {
		_, err := repo.InsertEntry(ctx, favorites.ID, catalog.KindStarship, id)
		require.NoError(t, err)
	}

	require.NoError(t, db.Delete(&catalog.Starship{}, 9).Error)

	handler := NewGetFavoritesViewHandler(repo, userrepo.NewGormUserRepository(db), catalogrepo.NewGormCatalogRepository(db), cache.NoopViewCache{})
	view, err := handler.Handle(ctx, GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids(view.Starships))

	entries, err := repo.ListEntries(ctx, favorites.ID, catalog.KindStarship)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGetFavoritesViewUsesCache(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	testutil.CreateUser(t, db, 1)
	testutil.CreatePlanet(t, db, 5, "Dagobah")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	viewCache := cache.NewRedisViewCache(client, time.Minute)

	repo := repository.NewGormFavoritesRepository(db)
	handler := NewGetFavoritesViewHandler(repo, userrepo.NewGormUserRepository(db), catalogrepo.NewGormCatalogRepository(db), viewCache)

	favorites, err := repo.GetOrCreateFavorites(ctx, 1)
	require.NoError(t, err)
	_, err = repo.InsertEntry(ctx, favorites.ID, catalog.KindPlanet, 5)
	require.NoError(t, err)

	view, err := handler.Handle(ctx, GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	require.Equal(t, []uint{5}, ids(view.Planets))
	assert.True(t, mr.Exists("favorites:view:1"))

	// a write behind the cache's back is not visible until invalidation
	entries, err := repo.ListEntries(ctx, favorites.ID, catalog.KindPlanet)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteEntry(ctx, &entries[0]))

	cached, err := handler.Handle(ctx, GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids(cached.Planets))

	require.NoError(t, viewCache.Invalidate(ctx, 1))
	fresh, err := handler.Handle(ctx, GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, fresh.Planets)
}

func TestGetFavoritesViewSurvivesCacheOutage(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, 1)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	handler := NewGetFavoritesViewHandler(
		repository.NewGormFavoritesRepository(db),
		userrepo.NewGormUserRepository(db),
		catalogrepo.NewGormCatalogRepository(db),
		cache.NewRedisViewCache(client, time.Minute),
	)

	view, err := handler.Handle(context.Background(), GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	assert.Zero(t, view.Len())
}
