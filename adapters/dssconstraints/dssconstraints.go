// Package dssconstraints parses the DSS-constraints JSON convention
// into a Qube (§4.9): a JSON array of objects, each object describing
// one dense combination of dimension values, all unioned together into
// the single Qube Parse returns.
package dssconstraints

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/scigolib/qubed"
)

// Option configures how Parse interprets its input.
type Option func(*options)

type options struct {
	order []string
}

// WithDimensionOrder overrides the preferred dimension order each
// object's Datacube is built under. Default: qubed.DefaultDimensionOrder.
func WithDimensionOrder(order []string) Option {
	return func(o *options) {
		if len(order) > 0 {
			o.order = order
		}
	}
}

// Parse reads a DSS-constraints JSON document and returns the union of
// every object's Datacube.
func Parse(r io.Reader, opts ...Option) (*qubed.Qube, error) {
	cfg := options{order: qubed.DefaultDimensionOrder}
	for _, o := range opts {
		o(&cfg)
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var docs []map[string]interface{}
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("dssconstraints: %w: %v", qubed.ErrInvalidFormat, err)
	}

	parts := make([]*qubed.Qube, 0, len(docs))
	for _, doc := range docs {
		values := make(map[string][]string, len(doc))
		for dim, raw := range doc {
			arr, ok := raw.([]interface{})
			if !ok {
				return nil, fmt.Errorf("dssconstraints: dimension %q: %w", dim, qubed.ErrInvalidFormat)
			}
			tokens, err := toTokens(dim, arr)
			if err != nil {
				return nil, err
			}
			values[dim] = tokens
		}
		parts = append(parts, qubed.FromDatacube(qubed.Datacube{Dims: cfg.order, Values: values}))
	}

	result := qubed.New()
	if err := result.UnionMany(parts); err != nil {
		return nil, err
	}
	return result, nil
}

func toTokens(dim string, arr []interface{}) ([]string, error) {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		switch vv := v.(type) {
		case json.Number:
			out = append(out, vv.String())
		case string:
			out = append(out, vv)
		default:
			return nil, fmt.Errorf("dssconstraints: dimension %q: %w", dim, qubed.ErrInvalidFormat)
		}
	}
	return out, nil
}
