package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/starwars-blog/internal/user/delivery/http"
	"github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/internal/user/repository"
	"github.com/tair/starwars-blog/internal/user/usecase/command"
	"github.com/tair/starwars-blog/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	command.NewCreateUserHandler,
	query.NewListUsersHandler,
	http.NewUserHandlerWithDI,
)

var ProviderSet = wire.NewSet(
	RepositorySet,
	HandlerSet,
)
