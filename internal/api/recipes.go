package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   service.IRecipeService
	favoriteService service.IFavoriteService
	cartService     service.ICartService
	followService   service.IFollowService
}

func NewRecipeHandler(
	recipeService service.IRecipeService,
	favoriteService service.IFavoriteService,
	cartService service.ICartService,
	followService service.IFollowService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
		followService:   followService,
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, limit := pageParams(c)
	filter := types.RecipeFilter{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      c.Query("is_favorited") == "1",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1",
		Page:             page,
		Limit:            limit,
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			badRequest(c, "invalid author id")
			return
		}
		filter.AuthorID = authorID
	}

	viewerID, _ := middleware.UserID(c)
	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), viewerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.present(c, viewerID, recipes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.PageResponse[types.RecipeResponse]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	viewerID, _ := middleware.UserID(c)
	h.respondRecipe(c, http.StatusOK, viewerID, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondRecipe(c, http.StatusCreated, userID, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondRecipe(c, http.StatusOK, userID, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) respondRecipe(c *gin.Context, status int, viewerID uuid.UUID, recipe *models.Recipe) {
	results, err := h.present(c, viewerID, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, results[0])
}

// present builds the read representation of recipes as seen by viewerID.
func (h *RecipeHandler) present(c *gin.Context, viewerID uuid.UUID, recipes []models.Recipe) ([]types.RecipeResponse, error) {
	ctx := c.Request.Context()

	ids := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	favorited, inCart, err := h.recipeService.ViewerFlags(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	subscribed := make(map[uuid.UUID]bool)
	results := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]
		following, seen := subscribed[recipe.AuthorID]
		if !seen {
			if following, err = h.followService.IsSubscribed(ctx, viewerID, recipe.AuthorID); err != nil {
				return nil, err
			}
			subscribed[recipe.AuthorID] = following
		}
		results = append(results, recipeResponse(recipe, recipeView{
			favorited:        favorited[recipe.ID],
			inCart:           inCart[recipe.ID],
			authorSubscribed: following,
		}))
	}
	return results, nil
}
