package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "operation", logger.Operation("fetch_products").Key)
	assert.Equal(t, "op-1", logger.OperationID("op-1").Value.String())
	assert.Equal(t, "component", logger.Component("premium").Key)
	assert.Equal(t, "variant", logger.Variant("first").Key)
	assert.Equal(t, "provider", logger.Provider("static").Key)
	assert.Equal(t, int64(10), logger.Attempts(10).Value.Int64())

	assert.Equal(t, "product_id", logger.ProductID("com.app.weekly").Key)
	assert.True(t, logger.ProductID("").Equal(slog.Attr{}))
}

func TestOperationIDFrom(t *testing.T) {
	_, ok := logger.OperationIDFrom(context.Background())
	assert.False(t, ok)

	ctx := logger.WithOperationID(context.Background(), "")
	_, ok = logger.OperationIDFrom(ctx)
	assert.False(t, ok)

	ctx = logger.WithOperationID(context.Background(), "abc")
	id, ok := logger.OperationIDFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}
