package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredientsFiltersByName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	testhelpers.CreateTestIngredient(t, db, "Sugar", "g")
	testhelpers.CreateTestIngredient(t, db, "Brown sugar", "g")
	testhelpers.CreateTestIngredient(t, db, "Salt", "g")

	all, err := svc.ListIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Brown sugar", all[0].Name)

	sugars, err := svc.ListIngredients(context.Background(), "SUG")
	require.NoError(t, err)
	require.Len(t, sugars, 2)
	assert.Equal(t, "Brown sugar", sugars[0].Name)
	assert.Equal(t, "Sugar", sugars[1].Name)
}

func TestGetIngredient(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	salt := testhelpers.CreateTestIngredient(t, db, "Salt", "g")

	found, err := svc.GetIngredient(context.Background(), salt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salt", found.Name)

	_, err = svc.GetIngredient(context.Background(), salt.ID+100)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetOrCreateKeysOnNameAndUnit(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	first, created, err := svc.GetOrCreate(ctx, "Flour", "g")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.GetOrCreate(ctx, " Flour ", "g")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	kg, created, err := svc.GetOrCreate(ctx, "Flour", "kg")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, kg.ID)

	_, _, err = svc.GetOrCreate(ctx, "", "g")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestImportIngredients(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	testhelpers.CreateTestIngredient(t, db, "Salt", "g")

	csv := "abricots,g\n\"apple, green\",piece\n\nSalt,g\nabricots,g\nabricots,kg\n"
	result, err := svc.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, service.ImportResult{Created: 3, Existing: 2}, result)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	found, err := svc.ListIngredients(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "apple, green", found[0].Name)
}

func TestImportIngredientsIsAtomic(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)

	_, err := svc.Import(context.Background(), strings.NewReader("Flour,g\nbroken\n"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}
