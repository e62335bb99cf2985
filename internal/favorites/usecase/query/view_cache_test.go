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
	"github.com/tair/starwars-blog/internal/favorites/usecase/command"
	"github.com/tair/starwars-blog/internal/testutil"
	userrepo "github.com/tair/starwars-blog/internal/user/repository"
	"github.com/tair/starwars-blog/kafka"
)

// interleavingRepository runs each hook once, right after the matching read
// returns, to slip a write into the middle of building a view.
type interleavingRepository struct {
	domain.FavoritesRepository
	onFind func()
	onList func()
}

func (r *interleavingRepository) FindFavorites(ctx context.Context, userID uint) (*domain.Favorites, error) {
	favorites, err := r.FavoritesRepository.FindFavorites(ctx, userID)
	runOnce(&r.onFind)
	return favorites, err
}

func (r *interleavingRepository) ListEntries(ctx context.Context, favoritesID uint, kind catalog.Kind) ([]domain.FavoriteEntry, error) {
	entries, err := r.FavoritesRepository.ListEntries(ctx, favoritesID, kind)
	runOnce(&r.onList)
	return entries, err
}

func runOnce(hook *func()) {
	if *hook == nil {
		return
	}
	fn := *hook
	*hook = nil
	fn()
}

type cachedFixture struct {
	view   *GetFavoritesViewHandler
	add    *command.AddFavoriteHandler
	remove *command.RemoveFavoriteHandler
	reads  *interleavingRepository
}

func newCachedFixture(t *testing.T) *cachedFixture {
	t.Helper()

	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, 1)
	testutil.CreatePlanet(t, db, 5, "Dagobah")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	viewCache := cache.NewRedisViewCache(client, time.Minute)

	repo := repository.NewGormFavoritesRepository(db)
	users := userrepo.NewGormUserRepository(db)
	catalogRepo := catalogrepo.NewGormCatalogRepository(db)
	reads := &interleavingRepository{FavoritesRepository: repo}

	return &cachedFixture{
		view:   NewGetFavoritesViewHandler(reads, users, catalogRepo, viewCache),
		add:    command.NewAddFavoriteHandler(repo, users, catalogRepo, viewCache, kafka.NoopPublisher{}),
		remove: command.NewRemoveFavoriteHandler(repo, users, viewCache, kafka.NoopPublisher{}),
		reads:  reads,
	}
}

func (f *cachedFixture) planets(t *testing.T) []uint {
	t.Helper()
	view, err := f.view.Handle(context.Background(), GetFavoritesViewQuery{UserID: 1})
	require.NoError(t, err)
	return ids(view.Planets)
}

func TestCachedViewFollowsWrites(t *testing.T) {
	f := newCachedFixture(t)
	ctx := context.Background()

	assert.Empty(t, f.planets(t))
	assert.Empty(t, f.planets(t))

	_, err := f.add.Handle(ctx, command.AddFavoriteCommand{UserID: 1, Kind: catalog.KindPlanet, EntityID: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, f.planets(t))
	assert.Equal(t, []uint{5}, f.planets(t))

	require.NoError(t, f.remove.Handle(ctx, command.RemoveFavoriteCommand{UserID: 1, Kind: catalog.KindPlanet, EntityID: 5}))
	assert.Empty(t, f.planets(t))
	assert.Empty(t, f.planets(t))
}

func TestViewBuiltDuringAddIsNotCached(t *testing.T) {
	f := newCachedFixture(t)
	ctx := context.Background()

	f.reads.onFind = func() {
		_, err := f.add.Handle(ctx, command.AddFavoriteCommand{UserID: 1, Kind: catalog.KindPlanet, EntityID: 5})
		require.NoError(t, err)
	}

	// the read started before the add, so it may miss it
	assert.Empty(t, f.planets(t))

	// but it must not hide the add from later reads
	assert.Equal(t, []uint{5}, f.planets(t))
}

func TestViewBuiltDuringRemoveIsNotCached(t *testing.T) {
	f := newCachedFixture(t)
	ctx := context.Background()

	_, err := f.add.Handle(ctx, command.AddFavoriteCommand{UserID: 1, Kind: catalog.KindPlanet, EntityID: 5})
	require.NoError(t, err)

	f.reads.onList = func() {
		require.NoError(t, f.remove.Handle(ctx, command.RemoveFavoriteCommand{UserID: 1, Kind: catalog.KindPlanet, EntityID: 5}))
	}

	// planets are listed first, before the remove commits
	assert.Equal(t, []uint{5}, f.planets(t))

	assert.Empty(t, f.planets(t))
}
