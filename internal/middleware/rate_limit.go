package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodgram/backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig is a fixed window of Limit requests per Window, counted
// per user under KeyPrefix.
type RateLimitConfig struct {
	Window    time.Duration
	Limit     int
	KeyPrefix string
}

// RateLimiter counts requests in Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// NewRateLimiter creates a new rate limiter instance. Without a Redis client
// it returns nil, and a nil limiter lets every request through.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	if redisClient == nil {
		return nil
	}
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewRecipeWriteRateLimiter limits recipe creation and updates per user.
// namespace is the deployment key prefix (redis.key_prefix).
func NewRecipeWriteRateLimiter(redisClient *redis.Client, namespace string) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     30,
		KeyPrefix: namespacedKey(namespace, "rate_limit:recipe_write"),
	})
}

// NewShoppingListRateLimiter limits shopping list exports per user.
func NewShoppingListRateLimiter(redisClient *redis.Client, namespace string) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     20,
		KeyPrefix: namespacedKey(namespace, "rate_limit:shopping_list"),
	})
}

func namespacedKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		userID, exists := UserID(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		decision, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			// fail open while Redis is unavailable
			logger.FromContext(c.Request.Context()).WithError(err).Warn("rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(time.Until(decision.Reset).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: fmt.Sprintf("rate limit of %d requests per %v exceeded", rl.config.Limit, rl.config.Window),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts one request of userID in the current window.
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (Decision, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	key := rl.windowKey(userID, windowStart)

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit counter: %w", err)
	}
	// the first request of a window starts its expiry
	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.config.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limit expiry: %w", err)
		}
	}

	used := int(count)
	return Decision{
		Allowed:   used <= rl.config.Limit,
		Remaining: max(rl.config.Limit-used, 0),
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

func (rl *RateLimiter) windowKey(userID string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())
}
