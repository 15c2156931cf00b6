// Package repository holds the typed read queries shared by the services and
// the shopping list export.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/shopping"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCartRecipes returns the recipes in the user's cart, most recently added first.
func (r *Repository) ListCartRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Order("shopping_cart_entries.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart recipes: %w", err)
	}
	return recipes, nil
}

// ListLineItems returns the current ingredient lines of a recipe with their
// catalog entries loaded.
func (r *Repository) ListLineItems(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error) {
	var items []models.RecipeIngredient
	err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	return items, nil
}

// ListCatalogEntry looks up ingredients by id. Missing ids are simply absent
// from the result.
func (r *Repository) ListCatalogEntry(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

type cartLineRow struct {
	RecipeID     uuid.UUID
	IngredientID uint
	Name         sql.NullString
	Unit         sql.NullString
	Amount       decimal.Decimal
}

// CartLineItems reads every line item of every recipe in the user's cart in
// one statement. The ingredient join is a LEFT JOIN so a line pointing at a
// missing ingredient comes back marked Orphaned instead of vanishing.
func (r *Repository) CartLineItems(ctx context.Context, userID uuid.UUID) ([]shopping.LineItem, error) {
	var rows []cartLineRow
	err := r.db.WithContext(ctx).
		Table("shopping_cart_entries AS c").
		Select("ri.recipe_id AS recipe_id, ri.ingredient_id AS ingredient_id, i.name AS name, i.measurement_unit AS unit, ri.amount AS amount").
		Joins("JOIN recipe_ingredients AS ri ON ri.recipe_id = c.recipe_id").
		Joins("LEFT JOIN ingredients AS i ON i.id = ri.ingredient_id").
		Where("c.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read cart line items: %w", err)
	}

	items := make([]shopping.LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, shopping.LineItem{
			RecipeID:     row.RecipeID,
			IngredientID: row.IngredientID,
			Name:         row.Name.String,
			Unit:         row.Unit.String,
			Amount:       row.Amount,
			Orphaned:     !row.Name.Valid,
		})
	}
	return items, nil
}
