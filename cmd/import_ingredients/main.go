package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/sirupsen/logrus"
)

// Loads the ingredient catalog from a "name,measurement_unit" CSV file.
func main() {
	file := flag.String("file", "data/ingredients.csv", "CSV file with name,measurement_unit rows")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	ctx := context.Background()
	if err := database.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	f, err := os.Open(*file)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open ingredients file")
	}
	defer f.Close()

	result, err := service.NewIngredientService(db).Import(ctx, f)
	if err != nil {
		logrus.WithError(err).Fatal("import failed")
	}
	logrus.WithFields(logrus.Fields{
		"file":     *file,
		"created":  result.Created,
		"existing": result.Existing,
	}).Info("ingredient import finished")
}
