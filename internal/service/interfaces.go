package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, int64, error)
	SetPassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// IIngredientService defines the interface for the ingredient catalog
type IIngredientService interface {
	ListIngredients(ctx context.Context, name string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error)
	Import(ctx context.Context, r io.Reader) (ImportResult, error)
}

// ITagService defines the interface for tag operations
type ITagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	CreateTag(ctx context.Context, req *types.CreateTagRequest) (*models.Tag, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, authorID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, authorID uuid.UUID) error
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, viewerID uuid.UUID, filter types.RecipeFilter) ([]models.Recipe, int64, error)
	ViewerFlags(ctx context.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, map[uuid.UUID]bool, error)
}

// ICartService defines the interface for shopping cart operations
type ICartService interface {
	AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
	ListCart(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IFollowService defines the interface for author subscriptions
type IFollowService interface {
	Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (*Subscription, error)
	Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error
	IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	SubscribedAmong(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	ListSubscriptions(ctx context.Context, userID uuid.UUID, page, limit, recipesLimit int) ([]Subscription, int64, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
	_ ITagService        = (*TagService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ ICartService       = (*CartService)(nil)
	_ IFavoriteService   = (*FavoriteService)(nil)
	_ IFollowService     = (*FollowService)(nil)
)
