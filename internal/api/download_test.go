package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/api"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/mocks"
	"github.com/pageza/foodgram/backend/internal/shopping"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newDownloadRouter(cart *mocks.MockCartService, validator *mocks.MockTokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := api.NewRecipeHandler(nil, nil, cart, nil)
	engine := gin.New()
	engine.Use(middleware.RequestLogger(), middleware.Recovery())
	engine.GET("/download", middleware.AuthMiddleware(validator), handler.DownloadShoppingCart)
	return engine
}

func TestDownloadShoppingCartSourceErrors(t *testing.T) {
	userID := uuid.New()

	for name, cause := range map[string]error{
		"storage failure": fmt.Errorf("shopping list: %w", errors.New("connection reset")),
		"orphaned line":   &shopping.OrphanError{RecipeID: uuid.New(), IngredientID: 7},
	} {
		t.Run(name, func(t *testing.T) {
			cart := new(mocks.MockCartService)
			cart.On("BuildShoppingList", mock.Anything, userID).Return(nil, cause)
			validator := new(mocks.MockTokenValidator)
			validator.On("ValidateToken", "token").Return(&types.TokenClaims{UserID: userID}, nil)

			req := httptest.NewRequest(http.MethodGet, "/download", nil)
			req.Header.Set("Authorization", "Bearer token")
			w := httptest.NewRecorder()
			newDownloadRouter(cart, validator).ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Empty(t, w.Header().Get("Content-Disposition"))
			cart.AssertExpectations(t)
		})
	}
}

func TestDownloadShoppingCartRejectsBadToken(t *testing.T) {
	cart := new(mocks.MockCartService)
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))

	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	newDownloadRouter(cart, validator).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cart.AssertNotCalled(t, "BuildShoppingList", mock.Anything, mock.Anything)
}
