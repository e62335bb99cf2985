package favorites

import (
	"fmt"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/internal/catalog"
	cataloghttp "github.com/tair/starwars-blog/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/starwars-blog/internal/catalog/domain"
	catalogrepo "github.com/tair/starwars-blog/internal/catalog/repository"
	"github.com/tair/starwars-blog/internal/favorites/delivery/http"
	"github.com/tair/starwars-blog/internal/favorites/domain"
	"github.com/tair/starwars-blog/internal/favorites/repository"
	"github.com/tair/starwars-blog/internal/favorites/usecase/command"
	"github.com/tair/starwars-blog/internal/favorites/usecase/query"
	"github.com/tair/starwars-blog/internal/user"
	userhttp "github.com/tair/starwars-blog/internal/user/delivery/http"
	userdomain "github.com/tair/starwars-blog/internal/user/domain"
	userrepo "github.com/tair/starwars-blog/internal/user/repository"
	usercommand "github.com/tair/starwars-blog/internal/user/usecase/command"
)

// Module holds everything the blog binary serves
type Module struct {
	CatalogHandler    *cataloghttp.CatalogHandler
	UserHandler       *userhttp.UserHandler
	FavoritesHandler  *http.FavoritesHandler
	PurgeHandler      *command.PurgeEntityHandler
	CreateUserHandler *usercommand.CreateUserHandler
	Catalog           catalogdomain.CatalogRepository
	Users             userdomain.UserRepository
}

// ProvideFavoritesRepository provides the favorites repository
func ProvideFavoritesRepository(db *gorm.DB) domain.FavoritesRepository {
	return repository.NewTracingFavoritesRepository(repository.NewGormFavoritesRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoritesRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewAddFavoriteHandler,
	command.NewRemoveFavoriteHandler,
	command.NewPurgeEntityHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetFavoritesViewHandler,
)

var HTTPSet = wire.NewSet(
	http.NewMetrics,
	http.NewFavoritesHandlerWithDI,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	HTTPSet,
	user.ProviderSet,
	catalog.ProviderSet,
	wire.Struct(new(Module), "*"),
)

// Migrate creates or updates every table of the service
func Migrate(db *gorm.DB) error {
	if err := userrepo.NewGormUserRepository(db).AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}
	if err := catalogrepo.NewGormCatalogRepository(db).AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	if err := repository.NewGormFavoritesRepository(db).AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate favorites: %w", err)
	}
	return nil
}
