package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/models"
)

const shoppingListFilename = "Cart.txt"

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.favoriteService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.favoriteService.RemoveFavorite)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	h.listRelation(c, h.favoriteService.ListFavorites)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.cartService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.cartService.RemoveFromCart)
}

func (h *RecipeHandler) ListCart(c *gin.Context) {
	h.listRelation(c, h.cartService.ListCart)
}

// DownloadShoppingCart sends the caller's aggregated shopping list as a text
// attachment. The whole document is built before anything is written, so a
// failure never leaves a partial file behind.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	body, err := h.cartService.BuildShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.FromContext(c.Request.Context()).WithField("bytes", len(body)).Info("shopping list exported")
	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}

// addRelation links the caller to the recipe named in the path and answers
// with the short recipe.
func (h *RecipeHandler) addRelation(c *gin.Context, add func(context.Context, uuid.UUID, uuid.UUID) (*models.Recipe, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	recipe, err := add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shortRecipe(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) listRelation(c *gin.Context, list func(context.Context, uuid.UUID) ([]models.Recipe, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := list(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shortRecipes(recipes))
}
