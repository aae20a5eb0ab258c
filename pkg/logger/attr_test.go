package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestValidationAttrs(t *testing.T) {
	assert.True(t, logger.Field("Total").Equal(slog.String("field", "Total")))
	assert.True(t, logger.Property("Tax").Equal(slog.String("property", "Tax")))
	assert.True(t, logger.Property("").Equal(slog.Attr{}))
	assert.True(t, logger.Reason("gte_sum").Equal(slog.String("reason", "gte_sum")))
	assert.True(t, logger.Locale("de").Equal(slog.String("locale", "de")))
	assert.True(t, logger.Component("rules").Equal(slog.String("component", "rules")))
	assert.True(t, logger.Duration(time.Second).Equal(slog.Duration("duration", time.Second)))

	fields := logger.Fields([]string{"A", "C"})
	assert.Equal(t, "fields", fields.Key)
	assert.Equal(t, []string{"A", "C"}, fields.Value.Any())

	cmp := logger.Comparison(6, 7)
	require.Equal(t, "comparison", cmp.Key)
	g := cmp.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, int64(6), g[0].Value.Int64())
	assert.Equal(t, int64(7), g[1].Value.Int64())

	assert.Equal(t, "invoice.json", logger.Subject("invoice.json").Value.Any())
	assert.True(t, logger.Subject(nil).Equal(slog.Attr{}))
}
