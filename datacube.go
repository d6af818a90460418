package qubed

import (
	"github.com/scigolib/qubed/internal/compressengine"
	"github.com/scigolib/qubed/internal/datacube"
	"github.com/scigolib/qubed/internal/unionengine"
)

// Datacube is one dense combination of dimension values: every
// combination across Dims is implicitly present (§4.7).
type Datacube struct {
	Dims   []string
	Values map[string][]string
}

// DefaultDimensionOrder is the dimension order FromDatacube uses when
// the caller does not otherwise specify one — it is also the order the
// DSS-constraints adapter builds its datacubes under (§4.9).
var DefaultDimensionOrder = []string{
	"class", "stream", "expver", "type", "levtype",
	"date", "time", "domain", "param", "step", "number", "levelist",
}

// FromDatacube builds a Qube containing exactly the one dense
// combination c describes, as a single chain: order[0] -> order[1] ->
// ... Dimensions in c.Values but absent from order are appended after
// it, in map iteration order.
func FromDatacube(c Datacube, opts ...Option) *Qube {
	order := c.Dims
	if len(order) == 0 {
		order = DefaultDimensionOrder
	}
	a := datacube.FromCube(datacube.Cube{Dims: completeOrder(order, c.Values), Values: c.Values})
	cfg := newConfig(opts)
	return wrap(a, cfg)
}

func completeOrder(order []string, values map[string][]string) []string {
	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order)+len(values))
	for _, d := range order {
		if _, ok := values[d]; ok && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for d := range values {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// ToDatacubes enumerates every root-to-leaf path of q as one Datacube
// each (§4.7).
func (q *Qube) ToDatacubes() []Datacube {
	cubes := datacube.ToCubes(q.arena)
	out := make([]Datacube, len(cubes))
	for i, c := range cubes {
		out[i] = Datacube{Dims: c.Dims, Values: c.Values}
	}
	return out
}

// AppendDatacube folds one more dense combination into q: it is built
// as its own Qube via FromDatacube and unioned in, recompressing
// afterward (§4.7, §4.4).
func (q *Qube) AppendDatacube(c Datacube) error {
	order := c.Dims
	if len(order) == 0 {
		order = DefaultDimensionOrder
	}
	extra := datacube.FromCube(datacube.Cube{Dims: completeOrder(order, c.Values), Values: c.Values})
	return unionengine.Union(q.arena, extra, compressengine.Compress)
}
