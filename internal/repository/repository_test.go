package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/shopping"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLineItemsSoupAndSalad(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := New(db)

	author := testhelpers.CreateTestUser(t, db, "chef")
	carrot := testhelpers.CreateTestIngredient(t, db, "Carrot", "gram")
	salt := testhelpers.CreateTestIngredient(t, db, "Salt", "gram")
	soup := testhelpers.CreateTestRecipe(t, db, author, "Soup",
		testhelpers.Line(carrot, "100"), testhelpers.Line(salt, "5"))
	salad := testhelpers.CreateTestRecipe(t, db, author, "Salad",
		testhelpers.Line(carrot, "50"), testhelpers.Line(salt, "2"))
	testhelpers.AddToCart(t, db, author.ID, soup.ID)
	testhelpers.AddToCart(t, db, author.ID, salad.ID)

	lines, err := shopping.NewAggregator(repo).BuildShoppingList(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carrot: 150 gram\nSalt: 7 gram\n", string(shopping.Render(lines)))
}

func TestCartLineItemsIsScopedToUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := New(db)

	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	egg := testhelpers.CreateTestIngredient(t, db, "Egg", "piece")
	omelette := testhelpers.CreateTestRecipe(t, db, alice, "Omelette", testhelpers.Line(egg, "3"))
	cake := testhelpers.CreateTestRecipe(t, db, bob, "Cake", testhelpers.Line(egg, "4"))
	testhelpers.AddToCart(t, db, alice.ID, omelette.ID)
	testhelpers.AddToCart(t, db, bob.ID, cake.ID)
	testhelpers.AddToCart(t, db, bob.ID, omelette.ID)

	items, err := repo.CartLineItems(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, omelette.ID, items[0].RecipeID)
	assert.Equal(t, "3", items[0].Amount.String())

	items, err = repo.CartLineItems(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.CartLineItems(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartLineItemsRecipeWithoutIngredients(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "chef")
	water := testhelpers.CreateTestRecipe(t, db, user, "Water")
	testhelpers.AddToCart(t, db, user.ID, water.ID)

	items, err := New(db).CartLineItems(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartLineItemsMarksOrphans(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "chef")
	ghost := testhelpers.CreateTestIngredient(t, db, "Ghost pepper", "piece")
	recipe := testhelpers.CreateTestRecipe(t, db, user, "Hot sauce", testhelpers.Line(ghost, "1"))
	testhelpers.AddToCart(t, db, user.ID, recipe.ID)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM ingredients WHERE id = ?", ghost.ID).Error)

	items, err := New(db).CartLineItems(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Orphaned)
	assert.Equal(t, ghost.ID, items[0].IngredientID)

	_, err = shopping.NewAggregator(New(db)).BuildShoppingList(context.Background(), user.ID)
	assert.ErrorIs(t, err, shopping.ErrOrphanedLineItem)
}

func TestListCartRecipes(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := New(db)
	user := testhelpers.CreateTestUser(t, db, "chef")
	soup := testhelpers.CreateTestRecipe(t, db, user, "Soup")
	salad := testhelpers.CreateTestRecipe(t, db, user, "Salad")
	testhelpers.CreateTestRecipe(t, db, user, "Stew")
	testhelpers.AddToCart(t, db, user.ID, soup.ID)
	testhelpers.AddToCart(t, db, user.ID, salad.ID)

	recipes, err := repo.ListCartRecipes(context.Background(), user.ID)
	require.NoError(t, err)
	var names []string
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"Soup", "Salad"}, names)

	require.NoError(t, db.Where("user_id = ? AND recipe_id = ?", user.ID, soup.ID).Delete(&models.CartEntry{}).Error)
	recipes, err = repo.ListCartRecipes(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, salad.ID, recipes[0].ID)
}

func TestListLineItemsReflectsLatestVersion(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := New(db)
	user := testhelpers.CreateTestUser(t, db, "chef")
	flour := testhelpers.CreateTestIngredient(t, db, "Flour", "g")
	milk := testhelpers.CreateTestIngredient(t, db, "Milk", "ml")
	recipe := testhelpers.CreateTestRecipe(t, db, user, "Pancakes", testhelpers.Line(flour, "200"))

	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error)
	line := testhelpers.Line(milk, "0.25")
	line.RecipeID = recipe.ID
	require.NoError(t, db.Omit("Ingredient").Create(&line).Error)

	items, err := repo.ListLineItems(context.Background(), recipe.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Ingredient)
	assert.Equal(t, "Milk", items[0].Ingredient.Name)
	assert.Equal(t, "0.25", items[0].Amount.String())
}

func TestListCatalogEntry(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	repo := New(db)
	flour := testhelpers.CreateTestIngredient(t, db, "Flour", "g")
	sugar := testhelpers.CreateTestIngredient(t, db, "Sugar", "g")

	found, err := repo.ListCatalogEntry(context.Background(), []uint{flour.ID, sugar.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.ListCatalogEntry(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}
