package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user whose email is derived from username.
// The password hash is not a valid bcrypt hash.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return ingredient
}

func CreateTestTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: slug, Color: "#E26C2D", Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create tag %s: %v", slug, err)
	}
	return tag
}

// Line builds a recipe line item for CreateTestRecipe.
func Line(ingredient *models.Ingredient, amount string) models.RecipeIngredient {
	return models.RecipeIngredient{
		IngredientID: ingredient.ID,
		Amount:       decimal.RequireFromString(amount),
	}
}

// CreateTestRecipe inserts a recipe by author with the given line items.
func CreateTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, lines ...models.RecipeIngredient) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        name + " instructions",
		CookingTime: 10,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
			if err := tx.Omit("Ingredient").Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to create recipe %s: %v", name, err)
	}
	recipe.Ingredients = lines
	return recipe
}

func AddToCart(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID) {
	t.Helper()
	if err := db.Create(&models.CartEntry{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		t.Fatalf("failed to add recipe to cart: %v", err)
	}
}

func AddFavorite(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID) {
	t.Helper()
	if err := db.Create(&models.RecipeFavorite{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		t.Fatalf("failed to add favorite: %v", err)
	}
}
