package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/foodgram/backend/internal/api"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Users   *api.UserHandler
	Catalog *api.CatalogHandler
	Recipes *api.RecipeHandler
}

// Options configures the engine around the handlers.
type Options struct {
	DB          *gorm.DB
	Validator   middleware.TokenValidator
	Redis       *redis.Client
	CORSOrigins []string

	// RateLimitPrefix namespaces the limiter keys in Redis.
	RateLimitPrefix string

	// MediaDir is served under /media when images are stored locally.
	MediaDir string
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.CORS(opts.CORSOrigins))

	router.GET("/health", api.HealthCheck(opts.DB))
	if opts.MediaDir != "" {
		router.Static("/media", opts.MediaDir)
	}

	authRequired := middleware.AuthMiddleware(opts.Validator)
	optionalAuth := middleware.OptionalAuth(opts.Validator)
	recipeWrites := middleware.NewRecipeWriteRateLimiter(opts.Redis, opts.RateLimitPrefix).RateLimitMiddleware()
	shoppingList := middleware.NewShoppingListRateLimiter(opts.Redis, opts.RateLimitPrefix).RateLimitMiddleware()

	v1 := router.Group("/api")

	// Auth routes
	v1.POST("/auth/token/login/", h.Users.Login)

	users := v1.Group("/users")
	{
		users.GET("/", optionalAuth, h.Users.ListUsers)
		users.POST("/", h.Users.Register)
		users.GET("/me/", authRequired, h.Users.Me)
		users.POST("/set_password/", authRequired, h.Users.SetPassword)
		users.GET("/subscriptions/", authRequired, h.Users.Subscriptions)
		users.GET("/:id/", optionalAuth, h.Users.GetUser)
		users.POST("/:id/subscribe/", authRequired, h.Users.Subscribe)
		users.DELETE("/:id/subscribe/", authRequired, h.Users.Unsubscribe)
	}

	tags := v1.Group("/tags")
	{
		tags.GET("/", h.Catalog.ListTags)
		tags.GET("/:id/", h.Catalog.GetTag)
		tags.POST("/", authRequired, h.Catalog.CreateTag)
	}

	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("/", h.Catalog.ListIngredients)
		ingredients.GET("/:id/", h.Catalog.GetIngredient)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("/", optionalAuth, h.Recipes.ListRecipes)
		recipes.GET("/download_shopping_cart/", authRequired, shoppingList, h.Recipes.DownloadShoppingCart)
		recipes.GET("/:id/", optionalAuth, h.Recipes.GetRecipe)
		recipes.POST("/", authRequired, recipeWrites, h.Recipes.CreateRecipe)
		recipes.PATCH("/:id/", authRequired, recipeWrites, h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id/", authRequired, h.Recipes.DeleteRecipe)
		recipes.POST("/:id/favorite/", authRequired, h.Recipes.AddFavorite)
		recipes.DELETE("/:id/favorite/", authRequired, h.Recipes.RemoveFavorite)
		recipes.POST("/:id/shopping_cart/", authRequired, h.Recipes.AddToCart)
		recipes.DELETE("/:id/shopping_cart/", authRequired, h.Recipes.RemoveFromCart)
	}

	v1.GET("/favorited/", authRequired, h.Recipes.ListFavorites)
	v1.GET("/cart/", authRequired, h.Recipes.ListCart)

	return router
}
