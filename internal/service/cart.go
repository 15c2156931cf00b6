package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/pageza/foodgram/backend/internal/shopping"
	"gorm.io/gorm"
)

type CartService struct {
	db         *gorm.DB
	repo       *repository.Repository
	aggregator *shopping.Aggregator
}

func NewCartService(db *gorm.DB, repo *repository.Repository) *CartService {
	return &CartService{
		db:         db,
		repo:       repo,
		aggregator: shopping.NewAggregator(repo),
	}
}

// AddToCart puts the recipe into the user's cart and returns it.
func (s *CartService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := findRecipe(ctx, s.db, recipeID)
	if err != nil {
		return nil, err
	}

	exists, err := pairExists(ctx, s.db, &models.CartEntry{}, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInCart
	}

	err = s.db.WithContext(ctx).Create(&models.CartEntry{UserID: userID, RecipeID: recipeID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadyInCart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add recipe to cart: %w", err)
	}
	return recipe, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := findRecipe(ctx, s.db, recipeID); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove recipe from cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

func (s *CartService) ListCart(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return s.repo.ListCartRecipes(ctx, userID)
}

// BuildShoppingList renders the aggregated shopping list of the user's cart.
// The document is complete before it is returned; an empty cart yields an
// empty document.
func (s *CartService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	lines, err := s.aggregator.BuildShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).WithField("lines", len(lines)).Debug("shopping list built")
	return shopping.Render(lines), nil
}

// pairExists reports whether a (user, recipe) row exists in model's table.
func pairExists(ctx context.Context, db *gorm.DB, model interface{}, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing entry: %w", err)
	}
	return count > 0, nil
}
