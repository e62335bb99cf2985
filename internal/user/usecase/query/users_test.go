package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/starwars-blog/internal/testutil"
	"github.com/tair/starwars-blog/internal/user/domain"
	"github.com/tair/starwars-blog/internal/user/repository"
	"github.com/tair/starwars-blog/internal/user/usecase/command"
	"github.com/tair/starwars-blog/internal/user/usecase/query"
)

func TestCreateAndQueryUsers(t *testing.T) {
	repo := repository.NewGormUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	create := command.NewCreateUserHandler(repo)
	created, err := create.Handle(ctx, command.CreateUserCommand{Email: " luke@rebellion.org "})
	require.NoError(t, err)
	assert.Equal(t, "luke", created.Username)
	assert.True(t, created.IsActive)

	_, err = create.Handle(ctx, command.CreateUserCommand{Email: "not-an-email"})
	assert.Error(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "luke@rebellion.org", got.Email)

	_, err = repo.FindByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err := query.NewListUsersHandler(repo).Handle(ctx, query.ListUsersQuery{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "luke", users[0]["username"])
	assert.NotContains(t, users[0], "created_at")
}
