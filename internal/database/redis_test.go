package database_test

import (
	"testing"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptionsFromHostAndPort(t *testing.T) {
	opts, err := database.RedisOptions(&config.Config{
		RedisHost:     "cache",
		RedisPort:     "6380",
		RedisPassword: "secret",
		RedisDB:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, database.RedisClientName, opts.ClientName)
}

func TestRedisOptionsURLWins(t *testing.T) {
	opts, err := database.RedisOptions(&config.Config{
		RedisHost: "ignored",
		RedisPort: "1",
		RedisURL:  "redis://:pw@redis.internal:6379/3",
	})
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, database.RedisClientName, opts.ClientName)

	_, err = database.RedisOptions(&config.Config{RedisURL: "http://not-redis"})
	assert.Error(t, err)
}

func TestNewRedisClientDisabled(t *testing.T) {
	client, err := database.NewRedisClient(&config.Config{RedisEnabled: false})
	assert.ErrorIs(t, err, database.ErrRedisDisabled)
	assert.Nil(t, client)
}
