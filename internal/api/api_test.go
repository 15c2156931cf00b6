package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodgram/backend/internal/api"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/pageza/foodgram/backend/internal/router"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/storage"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	auth   *service.AuthService
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	repo := repository.New(db)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	follows := service.NewFollowService(db)
	images, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	engine := router.SetupRouter(router.Handlers{
		Users:   api.NewUserHandler(auth, follows),
		Catalog: api.NewCatalogHandler(service.NewTagService(db), service.NewIngredientService(db)),
		Recipes: api.NewRecipeHandler(
			service.NewRecipeService(db, repo, images),
			service.NewFavoriteService(db),
			service.NewCartService(db, repo),
			follows,
		),
	}, router.Options{DB: db, Validator: auth})

	return &testAPI{t: t, db: db, auth: auth, engine: engine}
}

// do sends a JSON request, authenticated as user when user is not nil.
func (a *testAPI) do(method, path string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	a.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := a.auth.GenerateToken(user)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}
