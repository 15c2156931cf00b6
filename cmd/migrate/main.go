package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"

	_ "github.com/lib/pq"
	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/sirupsen/logrus"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "", "Migrations directory (defaults to the configured one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	migrationsDir := cfg.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		name, err := database.RollbackLastMigration(ctx, db, migrationsDir)
		if errors.Is(err, database.ErrNoMigrations) {
			logrus.Info("no migrations to rollback")
			return
		}
		if err != nil {
			logrus.WithError(err).Fatal("rollback failed")
		}
		logrus.WithField("migration", name).Info("rolled back migration")
		return
	}

	applied, err := database.ApplyMigrations(ctx, db, migrationsDir)
	if err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
	if len(applied) == 0 {
		logrus.Info("database is up to date")
		return
	}
	for _, name := range applied {
		logrus.WithField("migration", name).Info("applied migration")
	}
}
