package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/models"
	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const testPassword = "testpassword123"

type seedLine struct {
	name   string
	unit   string
	amount string
}

type seedRecipe struct {
	author  string
	name    string
	text    string
	minutes int
	tags    []string
	lines   []seedLine
}

var testUsers = []types.RegisterRequest{
	{Email: "john.doe@example.com", Username: "johndoe", FirstName: "John", LastName: "Doe"},
	{Email: "jane.smith@example.com", Username: "janesmith", FirstName: "Jane", LastName: "Smith"},
	{Email: "bob.wilson@example.com", Username: "bobwilson", FirstName: "Bob", LastName: "Wilson"},
}

var testTags = []types.CreateTagRequest{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

var testRecipes = []seedRecipe{
	{
		author: "johndoe", name: "Pancakes", minutes: 25, tags: []string{"breakfast"},
		text: "Whisk the eggs with milk, fold in the flour and fry thin pancakes.",
		lines: []seedLine{{"Flour", "g", "200"}, {"Milk", "ml", "300"}, {"Egg", "piece", "2"}},
	},
	{
		author: "janesmith", name: "Vegetable soup", minutes: 45, tags: []string{"lunch", "dinner"},
		text: "Simmer the chopped vegetables in salted water until soft.",
		lines: []seedLine{{"Carrot", "g", "100"}, {"Potato", "g", "300"}, {"Salt", "g", "5"}},
	},
	{
		author: "janesmith", name: "Carrot salad", minutes: 10, tags: []string{"lunch"},
		text: "Grate the carrots and season.",
		lines: []seedLine{{"Carrot", "g", "50"}, {"Salt", "g", "2"}},
	},
}

// Seeds a development database with users, tags and recipes. Every user
// gets the same password and the first user's cart holds all recipes.
func main() {
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
	if err := seed(ctx, db, cfg); err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
	logrus.WithField("password", testPassword).Info("seeding finished")
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	tags := service.NewTagService(db)
	ingredients := service.NewIngredientService(db)
	recipes := service.NewRecipeService(db, repository.New(db), nil)
	cart := service.NewCartService(db, repository.New(db))

	users := make(map[string]*models.User, len(testUsers))
	for _, req := range testUsers {
		req.Password = testPassword
		user, err := auth.Register(ctx, &req)
		if errors.Is(err, service.ErrUserExists) {
			user = &models.User{}
			err = db.WithContext(ctx).Where("username = ?", req.Username).First(user).Error
		}
		if err != nil {
			return err
		}
		users[user.Username] = user
	}

	tagIDs := make(map[string]uint, len(testTags))
	for _, req := range testTags {
		tag, err := tags.CreateTag(ctx, &req)
		if errors.Is(err, service.ErrTagExists) {
			tag = &models.Tag{}
			err = db.WithContext(ctx).Where("slug = ?", req.Slug).First(tag).Error
		}
		if err != nil {
			return err
		}
		tagIDs[tag.Slug] = tag.ID
	}

	first := users[testUsers[0].Username]
	for _, r := range testRecipes {
		req := types.RecipeRequest{Name: r.name, Text: r.text, CookingTime: r.minutes}
		for _, slug := range r.tags {
			req.Tags = append(req.Tags, tagIDs[slug])
		}
		for _, line := range r.lines {
			ingredient, _, err := ingredients.GetOrCreate(ctx, line.name, line.unit)
			if err != nil {
				return err
			}
			req.Ingredients = append(req.Ingredients, types.IngredientAmount{
				ID:     ingredient.ID,
				Amount: decimal.RequireFromString(line.amount),
			})
		}

		recipe, err := recipes.CreateRecipe(ctx, users[r.author].ID, &req)
		if err != nil {
			return err
		}
		if _, err := cart.AddToCart(ctx, first.ID, recipe.ID); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"recipe": recipe.Name, "author": r.author}).Info("seeded recipe")
	}
	return nil
}
