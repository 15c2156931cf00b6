package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=150"`
}

// LoginRequest represents the request body for obtaining a token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetPasswordRequest represents the request body for changing one's password
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=150"`
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required"`
	Slug  string `json:"slug" binding:"required,max=200"`
}

// IngredientAmount references a catalog entry and the quantity a recipe needs.
type IngredientAmount struct {
	ID     uint            `json:"id" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// RecipeRequest is the body of both recipe creation and update. On update an
// empty image keeps the stored one.
type RecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Image       string             `json:"image"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Tags        []uint             `json:"tags" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required,dive"`
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
	Page             int
	Limit            int
}
