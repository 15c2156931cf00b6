package testhelpers

import (
	"context"
	"testing"

	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDatabaseFixtures(t *testing.T) {
	db := SetupTestDatabase(t)

	author := CreateTestUser(t, db, "chef")
	flour := CreateTestIngredient(t, db, "Flour", "g")
	recipe := CreateTestRecipe(t, db, author, "Bread", Line(flour, "500"))
	AddToCart(t, db, author.ID, recipe.ID)

	var count int64
	require.NoError(t, db.Table("recipe_ingredients").Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostgresMigrationsMatchModels(t *testing.T) {
	db := SetupPostgresDatabase(t)

	author := CreateTestUser(t, db, "chef")
	carrot := CreateTestIngredient(t, db, "Carrot", "gram")
	soup := CreateTestRecipe(t, db, author, "Soup", Line(carrot, "100.5"))
	AddToCart(t, db, author.ID, soup.ID)

	items, err := repository.New(db).CartLineItems(context.Background(), author.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "100.5", items[0].Amount.String())
	assert.Equal(t, "Carrot", items[0].Name)

	// deleting the recipe cascades to its lines and cart entries
	require.NoError(t, db.Exec("DELETE FROM recipes WHERE id = ?", soup.ID).Error)
	items, err = repository.New(db).CartLineItems(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisContainer(t *testing.T) {
	client := SetupRedis(t)
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, "v", client.Get(context.Background(), "k").Val())
}
