package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/internal/catalog/delivery/http"
	"github.com/tair/starwars-blog/internal/catalog/domain"
	"github.com/tair/starwars-blog/internal/catalog/repository"
	"github.com/tair/starwars-blog/internal/catalog/usecase/query"
)

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewGormCatalogRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
)

var HandlerSet = wire.NewSet(
	query.NewGetEntityHandler,
	query.NewListEntitiesHandler,
	http.NewCatalogHandlerWithDI,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	HandlerSet,
)
