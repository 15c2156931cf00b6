package service_test

import (
	"context"
	"testing"

	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/testhelpers"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewTagService(db)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, &types.CreateTagRequest{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"})
	require.NoError(t, err)
	assert.NotZero(t, tag.ID)

	_, err = svc.CreateTag(ctx, &types.CreateTagRequest{Name: "Breakfast", Color: "#49B64E", Slug: "morning"})
	assert.ErrorIs(t, err, service.ErrTagExists)

	_, err = svc.CreateTag(ctx, &types.CreateTagRequest{Name: "Lunch", Color: "orange", Slug: "lunch"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreateTag(ctx, &types.CreateTagRequest{Name: "Lunch", Color: "#49B64E", Slug: "lunch time"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	got, err := svc.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Slug)

	_, err = svc.GetTag(ctx, tag.ID+1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListTags(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.CreateTestTag(t, db, "lunch")
	testhelpers.CreateTestTag(t, db, "breakfast")

	tags, err := service.NewTagService(db).ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
}
