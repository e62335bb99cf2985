package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogrepo "github.com/tair/starwars-blog/internal/catalog/repository"
	"github.com/tair/starwars-blog/internal/favorites/cache"
	"github.com/tair/starwars-blog/internal/favorites/repository"
	"github.com/tair/starwars-blog/internal/favorites/usecase/command"
	"github.com/tair/starwars-blog/internal/favorites/usecase/query"
	"github.com/tair/starwars-blog/internal/server"
	"github.com/tair/starwars-blog/internal/testutil"
	userhttp "github.com/tair/starwars-blog/internal/user/delivery/http"
	userrepo "github.com/tair/starwars-blog/internal/user/repository"
	"github.com/tair/starwars-blog/kafka"
	"github.com/tair/starwars-blog/pkg/auth"
)

type testServer struct {
	router   *mux.Router
	registry *prometheus.Registry
}

// newTestServer serves favorites for user 1 by default, with planet 5,
// character 1 and starship 9 in the catalog.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, 1)
	testutil.CreateUser(t, db, 2)
	testutil.CreatePlanet(t, db, 5, "Dagobah")
	testutil.CreateCharacter(t, db, 1, "Luke Skywalker")
	testutil.CreateStarship(t, db, 9, "Millennium Falcon")

	repo := repository.NewGormFavoritesRepository(db)
	users := userrepo.NewGormUserRepository(db)
	catalog := catalogrepo.NewGormCatalogRepository(db)
	views := cache.NoopViewCache{}
	publisher := kafka.NoopPublisher{}
	registry := prometheus.NewRegistry()

	handler := NewFavoritesHandlerWithDI(
		command.NewAddFavoriteHandler(repo, users, catalog, views, publisher),
		command.NewRemoveFavoriteHandler(repo, users, views, publisher),
		query.NewGetFavoritesViewHandler(repo, users, catalog, views),
		NewMetrics(registry, repo),
		userhttp.NewIdentityMiddleware(1),
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return &testServer{router: router, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path, token string) (int, server.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp server.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func (s *testServer) metricValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := s.registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metrics
				}
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	return 0
}

func TestFavoritesScenario(t *testing.T) {
	s := newTestServer(t)

	status, resp := s.do(t, http.MethodGet, "/users/favorites", "")
	require.Equal(t, http.StatusOK, status)
	view := resp.Data.(map[string]interface{})
	assert.Empty(t, view["planets"])
	assert.Empty(t, view["characters"])
	assert.Empty(t, view["starships"])

	status, resp = s.do(t, http.MethodPost, "/favorite/planet/5", "")
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "Dagobah", resp.Data.(map[string]interface{})["name"])

	status, resp = s.do(t, http.MethodPost, "/favorite/planet/5", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Error, "already exists")

	status, _ = s.do(t, http.MethodPost, "/favorite/people/1", "")
	require.Equal(t, http.StatusCreated, status)
	status, _ = s.do(t, http.MethodPost, "/favorite/starship/9", "")
	require.Equal(t, http.StatusCreated, status)

	status, resp = s.do(t, http.MethodGet, "/users/favorites", "")
	require.Equal(t, http.StatusOK, status)
	view = resp.Data.(map[string]interface{})
	planets := view["planets"].([]interface{})
	require.Len(t, planets, 1)
	assert.Equal(t, uint(5), testutil.NumberAsUint(planets[0].(map[string]interface{})["id"]))
	assert.Len(t, view["characters"], 1)
	assert.Len(t, view["starships"], 1)

	status, resp = s.do(t, http.MethodDelete, "/favorite/planet/5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Favorite removed", resp.Message)

	status, _ = s.do(t, http.MethodDelete, "/favorite/planet/5", "")
	assert.Equal(t, http.StatusNotFound, status)

	assert.Equal(t, float64(1), s.metricValue(t, "blog_favorites_added_total", map[string]string{"kind": "planet"}))
	assert.Equal(t, float64(1), s.metricValue(t, "blog_favorites_removed_total", map[string]string{"kind": "planet"}))
	assert.Equal(t, float64(2), s.metricValue(t, "blog_favorites", nil))
}

func TestFavoritesStatusMapping(t *testing.T) {
	s := newTestServer(t)

	auth.Init("test-secret")
	unknownUser, err := auth.GenerateToken(404, "ghost", "user", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"unknown planet", http.MethodPost, "/favorite/planet/99", "", http.StatusBadRequest},
		{"unknown character", http.MethodPost, "/favorite/people/42", "", http.StatusBadRequest},
		{"zero id", http.MethodPost, "/favorite/starship/0", "", http.StatusBadRequest},
		{"bad id", http.MethodPost, "/favorite/planet/dagobah", "", http.StatusBadRequest},
		{"remove never added", http.MethodDelete, "/favorite/people/1", "", http.StatusNotFound},
		{"unknown user add", http.MethodPost, "/favorite/planet/5", unknownUser, http.StatusNotFound},
		{"unknown user remove", http.MethodDelete, "/favorite/planet/5", unknownUser, http.StatusNotFound},
		{"unknown user view", http.MethodGet, "/users/favorites", unknownUser, http.StatusNotFound},
		{"invalid token", http.MethodGet, "/users/favorites", "garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := s.do(t, tt.method, tt.path, tt.token)

			assert.Equal(t, tt.status, status)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestFavoritesPerUser(t *testing.T) {
	s := newTestServer(t)

	auth.Init("test-secret")
	secondUser, err := auth.GenerateToken(2, "leia", "user", time.Minute)
	require.NoError(t, err)

	status, _ := s.do(t, http.MethodPost, "/favorite/planet/5", secondUser)
	require.Equal(t, http.StatusCreated, status)

	_, resp := s.do(t, http.MethodGet, "/users/favorites", "")
	assert.Empty(t, resp.Data.(map[string]interface{})["planets"])

	_, resp = s.do(t, http.MethodGet, "/users/favorites", secondUser)
	view := resp.Data.(map[string]interface{})
	assert.Equal(t, uint(2), testutil.NumberAsUint(view["user_id"]))
	assert.Len(t, view["planets"], 1)
}
