package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/starwars-blog/internal/catalog/repository"
	"github.com/tair/starwars-blog/internal/server"
	"github.com/tair/starwars-blog/internal/testutil"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	repo := repository.NewGormCatalogRepository(testutil.NewDB(t))
	require.NoError(t, repo.Seed(context.Background()))

	router := mux.NewRouter()
	NewCatalogHandler(repo).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string) (*httptest.ResponseRecorder, server.Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var resp server.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestListCollections(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/people", "/planet", "/starships"} {
		t.Run(path, func(t *testing.T) {
			rec, resp := doRequest(t, router, http.MethodGet, path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, resp.Success)
			items, ok := resp.Data.([]interface{})
			require.True(t, ok)
			assert.Len(t, items, 5)
		})
	}
}

func TestGetEntity(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := doRequest(t, router, http.MethodGet, "/planet/5")
	assert.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Dagobah", data["name"])
	assert.Equal(t, uint(5), testutil.NumberAsUint(data["id"]))

	rec, resp = doRequest(t, router, http.MethodGet, "/people/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Luke Skywalker", resp.Data.(map[string]interface{})["name"])
}

func TestGetEntityErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown planet", "/planet/99", http.StatusNotFound},
		{"unknown starship", "/starships/42", http.StatusNotFound},
		{"zero id", "/people/0", http.StatusNotFound},
		{"non numeric id", "/people/luke", http.StatusBadRequest},
		{"negative id", "/planet/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, router, http.MethodGet, tt.path)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}
