package qubed

import "github.com/scigolib/qubed/internal/serialize"

// ToASCII renders q as the §6 box-drawing tree format.
func (q *Qube) ToASCII() string {
	return serialize.ToASCII(q.arena)
}

// FromASCII parses the §6 box-drawing tree format into a new Qube.
func FromASCII(s string, opts ...Option) (*Qube, error) {
	a, err := serialize.FromASCII(s)
	if err != nil {
		return nil, err
	}
	return wrap(a, newConfig(opts)), nil
}

// ToJSON renders q as the §6 JSON object format, encoded through
// github.com/goccy/go-json.
func (q *Qube) ToJSON() ([]byte, error) {
	return serialize.ToJSON(q.arena)
}

// FromJSON parses the §6 JSON object format into a new Qube.
func FromJSON(data []byte, opts ...Option) (*Qube, error) {
	a, err := serialize.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return wrap(a, newConfig(opts)), nil
}
