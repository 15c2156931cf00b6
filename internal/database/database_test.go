package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() *config.Config {
	return &config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", database.SQLiteDSN(":memory:"))
	assert.Equal(t, "file.db?cache=shared&_foreign_keys=on", database.SQLiteDSN("file.db?cache=shared"))
	assert.Equal(t, "file.db?_foreign_keys=off", database.SQLiteDSN("file.db?_foreign_keys=off"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateSQLiteCreatesSchema(t *testing.T) {
	db, err := database.Open(sqliteConfig())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(context.Background(), db, ""))
	for _, table := range []string{"users", "ingredients", "tags", "recipes", "recipe_tags", "recipe_ingredients", "shopping_cart_entries", "recipe_favorites", "follows"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestApplyAndRollbackMigrations(t *testing.T) {
	db, err := database.Open(sqliteConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	dir := t.TempDir()
	files := map[string]string{
		"0001_widgets.sql":          "CREATE TABLE widgets (id INTEGER PRIMARY KEY);",
		"0001_widgets_rollback.sql": "DROP TABLE widgets;",
		"0002_gadgets.sql":          "CREATE TABLE gadgets (id INTEGER PRIMARY KEY);",
		"0002_gadgets_rollback.sql": "DROP TABLE gadgets;",
		"README.md":                 "not a migration",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	ctx := context.Background()
	applied, err := database.ApplyMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_widgets.sql", "0002_gadgets.sql"}, applied)
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("gadgets"))

	applied, err = database.ApplyMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Empty(t, applied)

	name, err := database.RollbackLastMigration(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, "0002_gadgets.sql", name)
	assert.False(t, db.Migrator().HasTable("gadgets"))
	assert.True(t, db.Migrator().HasTable("widgets"))

	_, err = database.RollbackLastMigration(ctx, sqlDB, dir)
	require.NoError(t, err)
	_, err = database.RollbackLastMigration(ctx, sqlDB, dir)
	assert.ErrorIs(t, err, database.ErrNoMigrations)
}
