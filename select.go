package qubed

import (
	"go.uber.org/zap"

	"github.com/scigolib/qubed/internal/query"
)

// SelectMode mirrors query.Mode at the public API boundary.
type SelectMode = query.Mode

const (
	// SelectDefault keeps every branch whose own dimension satisfies
	// its constraint, even if a deeper branch resolves to nothing.
	SelectDefault = query.Default

	// SelectPrune additionally drops any node whose subtree does not
	// hold every constrained dimension, whether filtering emptied it or
	// it never had that dimension.
	SelectPrune = query.Prune
)

// Select returns the sub-Qube matching constraints: per dimension, the
// coordinate values permitted at any node along that dimension,
// wherever it occurs in the tree. Dimensions absent from constraints
// pass through unfiltered (§4.6).
func (q *Qube) Select(constraints map[string][]string, mode SelectMode) (*Qube, error) {
	q.logger.Debug("select", zap.Int("constraints", len(constraints)))
	result, err := query.Select(q.arena, query.ConstraintsFromStrings(constraints), mode)
	if err != nil {
		return nil, err
	}
	return wrap(result, q.cfg), nil
}
