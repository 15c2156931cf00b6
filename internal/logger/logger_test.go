package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithLoggerKeepsExistingLogger(t *testing.T) {
	ctx, first := ContextWithLogger(context.Background())
	require.NotEmpty(t, RequestIDFromContext(ctx))

	same, second := ContextWithLogger(ctx)
	assert.Equal(t, ctx, same)
	assert.Same(t, first, second)
}

func TestContextWithLoggerIdentity(t *testing.T) {
	ctx, _ := ContextWithLogger(context.Background())
	requestID := RequestIDFromContext(ctx)

	ctx, rlog := ContextWithLoggerIdentity(ctx, "user-1")
	assert.Equal(t, "user-1", rlog.Data[identityLoggerKey])
	assert.Equal(t, requestID, RequestIDFromContext(ctx))
	assert.Same(t, rlog, FromContext(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	rlog := FromContext(context.Background())
	require.NotNil(t, rlog)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestInitLoggerLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, InitLogger(Options{Level: "debug"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, InitLogger(Options{Level: "loud"}))
}
