package qubed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scigolib/qubed/internal/unionengine"
)

func TestNewConfigDefaults(t *testing.T) {
	c := newConfig(nil)
	require.Equal(t, unionengine.DefaultBatchSize, c.unionBatchSize)
	require.NotNil(t, c.logger)
}

func TestWithLoggerOverridesDefault(t *testing.T) {
	l := zap.NewExample()
	c := newConfig([]Option{WithLogger(l)})
	require.Same(t, l, c.logger)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	c := newConfig([]Option{WithLogger(nil)})
	require.NotNil(t, c.logger)
}

func TestWithUnionBatchSizeOverridesDefault(t *testing.T) {
	c := newConfig([]Option{WithUnionBatchSize(10)})
	require.Equal(t, 10, c.unionBatchSize)
}

func TestWithUnionBatchSizeIgnoresNonPositive(t *testing.T) {
	c := newConfig([]Option{WithUnionBatchSize(0)})
	require.Equal(t, unionengine.DefaultBatchSize, c.unionBatchSize)
}
