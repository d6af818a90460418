package qubed

import (
	"go.uber.org/zap"

	"github.com/scigolib/qubed/internal/unionengine"
)

// config holds the options every New Qube is built from.
type config struct {
	logger         *zap.Logger
	unionBatchSize int
}

// Option configures a Qube at construction time.
type Option func(*config)

// WithLogger attaches a structured logger to a Qube; every union,
// compress and select call emits a debug-level entry through it.
// Default: zap.NewNop(), so a Qube built without this option is
// silent.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUnionBatchSize sets how many Qubes UnionMany folds in before
// recompressing (§4.4). A larger batch defers canonicalization longer,
// trading peak memory for fewer compression passes. Default:
// unionengine.DefaultBatchSize (500).
func WithUnionBatchSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.unionBatchSize = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{logger: zap.NewNop(), unionBatchSize: unionengine.DefaultBatchSize}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
