//go:build wireinject
// +build wireinject

package favorites

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/internal/favorites/domain"
	userhttp "github.com/tair/starwars-blog/internal/user/delivery/http"
)

// InitializeModule initializes every handler with all dependencies
func InitializeModule(
	db *gorm.DB,
	views domain.ViewCache,
	publisher domain.EventPublisher,
	registerer prometheus.Registerer,
	identity userhttp.IdentityMiddleware,
) (*Module, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
