package qubed

import "github.com/scigolib/qubed/internal/compressengine"

// Compress restores canonical form (§4.5): coordinate merge of
// shape-identical siblings, empty-node pruning, and hash dedup,
// repeated to a fixed point. Union and UnionMany already call this;
// exported for callers that mutate a Qube some other way (direct
// CreateChild/RemoveNode calls) and want to canonicalize afterward.
func (q *Qube) Compress() error {
	q.logger.Debug("compress")
	return compressengine.Compress(q.arena)
}
