package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/api"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/pageza/foodgram/backend/internal/repository"
	"github.com/pageza/foodgram/backend/internal/router"
	"github.com/pageza/foodgram/backend/internal/service"
	"github.com/pageza/foodgram/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	Auth   *service.AuthService
}

// New wires services and handlers over db and returns a server ready to
// start. redisClient may be nil, which disables rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images storage.ImageStore) *Server {
	repo := repository.New(db)

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	followService := service.NewFollowService(db)

	handlers := router.Handlers{
		Users: api.NewUserHandler(authService, followService),
		Catalog: api.NewCatalogHandler(
			service.NewTagService(db),
			service.NewIngredientService(db),
		),
		Recipes: api.NewRecipeHandler(
			service.NewRecipeService(db, repo, images),
			service.NewFavoriteService(db),
			service.NewCartService(db, repo),
			followService,
		),
	}

	opts := router.Options{
		DB:              db,
		Validator:       authService,
		Redis:           redisClient,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPrefix: cfg.RedisKeyPrefix,
	}
	if cfg.MediaBackend == "local" {
		opts.MediaDir = cfg.MediaDir
	}

	engine := router.SetupRouter(handlers, opts)
	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		Auth: authService,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. A graceful shutdown is not an error.
func (s *Server) Start() error {
	logger.Default().WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
