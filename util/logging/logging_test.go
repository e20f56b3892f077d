package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lambda-feedback/simpleserver/util/logging"
)

func TestLoggerFromContext(t *testing.T) {
	log := zap.NewNop()

	ctx := logging.ContextWithLogger(context.Background(), log)

	actual, err := logging.LoggerFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, log, actual)
}

func TestLoggerFromContext_Missing(t *testing.T) {
	_, err := logging.LoggerFromContext(context.Background())
	assert.ErrorIs(t, err, logging.ErrNoLoggerInContext)
}

func TestLoggerFromContextOr(t *testing.T) {
	fallback := zap.NewNop()
	scoped := zap.NewNop().Named("scoped")

	assert.Same(t, fallback, logging.LoggerFromContextOr(context.Background(), fallback))

	ctx := logging.ContextWithLogger(context.Background(), scoped)
	assert.Same(t, scoped, logging.LoggerFromContextOr(ctx, fallback))
}
