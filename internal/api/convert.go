package api

import (
	"encoding/json"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/shopping"
	"github.com/pageza/foodgram/backend/internal/types"
)

func userResponse(user *models.User, subscribed bool) types.UserResponse {
	if user == nil {
		return types.UserResponse{}
	}
	return types.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}

func tagResponse(tag models.Tag) types.TagResponse {
	return types.TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func tagResponses(tags []models.Tag) []types.TagResponse {
	out := make([]types.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tagResponse(tag))
	}
	return out
}

func shortRecipe(recipe *models.Recipe) types.ShortRecipe {
	return types.ShortRecipe{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func shortRecipes(recipes []models.Recipe) []types.ShortRecipe {
	out := make([]types.ShortRecipe, 0, len(recipes))
	for i := range recipes {
		out = append(out, shortRecipe(&recipes[i]))
	}
	return out
}

// ingredientLines renders a recipe's line items; amounts keep the same
// decimal form the shopping list prints.
func ingredientLines(items []models.RecipeIngredient) []types.IngredientLine {
	out := make([]types.IngredientLine, 0, len(items))
	for _, item := range items {
		line := types.IngredientLine{
			ID:     item.IngredientID,
			Amount: json.Number(shopping.FormatAmount(item.Amount)),
		}
		if item.Ingredient != nil {
			line.Name = item.Ingredient.Name
			line.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		out = append(out, line)
	}
	return out
}

// recipeView carries the caller-dependent flags of a recipe.
type recipeView struct {
	favorited        bool
	inCart           bool
	authorSubscribed bool
}

func recipeResponse(recipe *models.Recipe, view recipeView) types.RecipeResponse {
	return types.RecipeResponse{
		ID:               recipe.ID,
		Tags:             tagResponses(recipe.Tags),
		Author:           userResponse(recipe.Author, view.authorSubscribed),
		Ingredients:      ingredientLines(recipe.Ingredients),
		IsFavorited:      view.favorited,
		IsInShoppingCart: view.inCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}
}
