package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/pageza/foodgram/backend/internal/storage"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// numeric(12,3)
var maxAmount = decimal.New(1, 9)

// recipeTag is a row of the recipes/tags join table.
type recipeTag struct {
	RecipeID uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	TagID    uint      `gorm:"primaryKey"`
}

func (recipeTag) TableName() string {
	return "recipe_tags"
}

type RecipeService struct {
	db     *gorm.DB
	repo   *repository.Repository
	images storage.ImageStore
}

// NewRecipeService creates a RecipeService. images may be nil, in which case
// recipes with an image are rejected.
func NewRecipeService(db *gorm.DB, repo *repository.Repository, images storage.ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		repo:   repo,
		images: images,
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	imageURL, err := s.saveImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(req.Name),
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return writeComposition(tx, recipe.ID, req)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("recipe_id", recipe.ID).Info("recipe created")
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe overwrites the recipe. Tags and ingredient lines are replaced
// wholesale; an empty image keeps the current one.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, authorID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	recipe, err := s.findOwned(ctx, id, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	imageURL := recipe.Image
	if req.Image != "" {
		if imageURL, err = s.saveImage(ctx, req.Image); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":         strings.TrimSpace(req.Name),
			"image":        imageURL,
			"text":         req.Text,
			"cooking_time": req.CookingTime,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&recipeTag{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		return writeComposition(tx, id, req)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithField("recipe_id", id).Info("recipe updated")
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe together with everything that references it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, authorID uuid.UUID) error {
	if _, err := s.findOwned(ctx, id, authorID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.RecipeIngredient{},
			&recipeTag{},
			&models.CartEntry{},
			&models.RecipeFavorite{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("failed to delete recipe dependents: %w", err)
			}
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("recipe_id", id).Info("recipe deleted")
	return nil
}

// GetRecipe loads a recipe with its author and tags; the ingredient lines
// come from the repository together with their catalog entries.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Preload("Author").Preload("Tags").First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	lines, err := s.repo.ListLineItems(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = lines
	return &recipe, nil
}

// ListRecipes returns one page of recipes, newest first, and the total number
// of recipes matching filter. viewerID is uuid.Nil for anonymous callers, who
// get nothing back when asking for their favorites or cart.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID uuid.UUID, filter types.RecipeFilter) ([]models.Recipe, int64, error) {
	if (filter.IsFavorited || filter.IsInShoppingCart) && viewerID == uuid.Nil {
		return []models.Recipe{}, 0, nil
	}

	filtered := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Recipe{})
		if len(filter.TagSlugs) > 0 {
			query = query.Where("recipes.id IN (?)", s.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
		}
		if filter.AuthorID != uuid.Nil {
			query = query.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if filter.IsFavorited {
			query = query.Where("recipes.id IN (?)", s.db.Model(&models.RecipeFavorite{}).
				Select("recipe_id").Where("user_id = ?", viewerID))
		}
		if filter.IsInShoppingCart {
			query = query.Where("recipes.id IN (?)", s.db.Model(&models.CartEntry{}).
				Select("recipe_id").Where("user_id = ?", viewerID))
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	page, limit := normalizePage(filter.Page, filter.Limit)
	var recipes []models.Recipe
	err := s.withRelations(filtered()).
		Order("recipes.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, total, nil
}

// ViewerFlags reports which of recipeIDs the viewer has favorited and which
// are in the viewer's cart.
func (s *RecipeService) ViewerFlags(ctx context.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (favorited, inCart map[uuid.UUID]bool, err error) {
	favorited = make(map[uuid.UUID]bool)
	inCart = make(map[uuid.UUID]bool)
	if viewerID == uuid.Nil || len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	for _, id := range ids {
		favorited[id] = true
	}

	ids = nil
	if err := s.db.WithContext(ctx).Model(&models.CartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}
	for _, id := range ids {
		inCart[id] = true
	}
	return favorited, inCart, nil
}

func (s *RecipeService) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Tags").Preload("Ingredients.Ingredient")
}

func (s *RecipeService) findOwned(ctx context.Context, id, authorID uuid.UUID) (*models.Recipe, error) {
	recipe, err := findRecipe(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

func (s *RecipeService) validate(ctx context.Context, req *types.RecipeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if req.CookingTime < 1 {
		return fmt.Errorf("%w: cooking time must be at least 1 minute", ErrInvalidInput)
	}

	if len(req.Tags) == 0 {
		return fmt.Errorf("%w: at least one tag is required", ErrInvalidInput)
	}
	seenTags := make(map[uint]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			return fmt.Errorf("%w: tag %d is listed twice", ErrInvalidInput, id)
		}
		seenTags[id] = true
	}
	var tagCount int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", req.Tags).Count(&tagCount).Error; err != nil {
		return fmt.Errorf("failed to check tags: %w", err)
	}
	if tagCount != int64(len(req.Tags)) {
		return fmt.Errorf("%w: unknown tag", ErrInvalidInput)
	}

	if len(req.Ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient is required", ErrInvalidInput)
	}
	ids := make([]uint, 0, len(req.Ingredients))
	seen := make(map[uint]bool, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if seen[item.ID] {
			return fmt.Errorf("%w: ingredient %d is listed twice", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: amount of ingredient %d must not be negative", ErrInvalidInput, item.ID)
		}
		if !item.Amount.Equal(item.Amount.Round(3)) || item.Amount.GreaterThanOrEqual(maxAmount) {
			return fmt.Errorf("%w: amount of ingredient %d is out of range", ErrInvalidInput, item.ID)
		}
		ids = append(ids, item.ID)
	}

	found, err := s.repo.ListCatalogEntry(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: unknown ingredient", ErrInvalidInput)
	}
	return nil
}

func (s *RecipeService) saveImage(ctx context.Context, image string) (string, error) {
	if image == "" {
		return "", nil
	}
	if s.images == nil {
		return "", fmt.Errorf("%w: image uploads are disabled", ErrInvalidInput)
	}
	data, contentType, err := storage.DecodeDataURI(image)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.images.Save(ctx, data, contentType)
}

// writeComposition inserts the tag links and ingredient lines of a recipe.
func writeComposition(tx *gorm.DB, recipeID uuid.UUID, req *types.RecipeRequest) error {
	tags := make([]recipeTag, 0, len(req.Tags))
	for _, id := range req.Tags {
		tags = append(tags, recipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := tx.Create(&tags).Error; err != nil {
		return fmt.Errorf("failed to save recipe tags: %w", err)
	}

	lines := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		lines = append(lines, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	if err := tx.Omit("Ingredient").Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to save recipe ingredients: %w", err)
	}
	return nil
}

func findRecipe(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
