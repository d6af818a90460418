package qubed

import (
	"go.uber.org/zap"

	"github.com/scigolib/qubed/internal/arena"
	"github.com/scigolib/qubed/internal/compressengine"
	"github.com/scigolib/qubed/internal/unionengine"
)

// Union merges other's tuple set into q in place, then recompresses
// (§4.4). other is left in a partially-consumed, unspecified state and
// must not be reused afterward — union takes its source by exclusive
// access (§5).
func (q *Qube) Union(other *Qube) error {
	q.logger.Debug("union")
	return unionengine.Union(q.arena, other.arena, compressengine.Compress)
}

// UnionMany folds every Qube in others into q in sequence, recompressing
// every WithUnionBatchSize folds (and once more at the end) rather than
// after each one (§4.4's batching policy). Every element of others is
// consumed the same way a single Union's argument is.
func (q *Qube) UnionMany(others []*Qube) error {
	q.logger.Debug("union_many", zap.Int("count", len(others)))
	arenas := make([]*arena.Arena, len(others))
	for i, o := range others {
		arenas[i] = o.arena
	}
	return unionengine.Many(q.arena, arenas, q.cfg.unionBatchSize, compressengine.Compress)
}
