package codec

import (
	"fmt"

	"github.com/dot5enko/blockframe/index"
)

// label is the manifest form of an index.Label. Exactly one field is set.
type label struct {
	Null  bool    `json:"n,omitempty"`
	Str   *string `json:"s,omitempty"`
	Int   *int    `json:"i,omitempty"`
	Tuple []label `json:"t,omitempty"`
}

func encodeLabel(l index.Label) (label, error) {
	switch v := l.(type) {
	case nil:
		return label{Null: true}, nil
	case string:
		return label{Str: &v}, nil
	case int:
		return label{Int: &v}, nil
	case index.Tuple:
		out := label{Tuple: make([]label, v.Len())}
		for i := range out.Tuple {
			enc, err := encodeLabel(v.At(i))
			if err != nil {
				return label{}, err
			}
			out.Tuple[i] = enc
		}
		return out, nil
	}
	return label{}, fmt.Errorf("%w: label of type %T", ErrUnsupportedValue, l)
}

func decodeLabel(l label) (index.Label, error) {
	switch {
	case l.Null:
		return nil, nil
	case l.Str != nil:
		return *l.Str, nil
	case l.Int != nil:
		return *l.Int, nil
	case len(l.Tuple) > 0:
		values := make([]index.Label, len(l.Tuple))
		for i, part := range l.Tuple {
			v, err := decodeLabel(part)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		if len(values) > index.MaxLevels {
			return nil, fmt.Errorf("%w: tuple of %d levels", ErrCorrupt, len(values))
		}
		return index.T(values...), nil
	}
	return nil, fmt.Errorf("%w: empty label", ErrCorrupt)
}

func encodeLabels(labels []index.Label) ([]label, error) {
	out := make([]label, len(labels))
	for i, l := range labels {
		enc, err := encodeLabel(l)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func decodeLabels(labels []label) ([]index.Label, error) {
	out := make([]index.Label, len(labels))
	for i, l := range labels {
		dec, err := decodeLabel(l)
		if err != nil {
			return nil, err
		}
		out[i] = dec
	}
	return out, nil
}

// axis is the manifest form of an index. A hierarchical index is stored by
// its levels and codes and rebuilt from them.
type axis struct {
	Labels []label   `json:"labels,omitempty"`
	Levels [][]label `json:"levels,omitempty"`
	Codes  [][]int   `json:"codes,omitempty"`
	Names  []string  `json:"names,omitempty"`
}

func encodeAxis(ix *index.Index) (axis, error) {
	if !ix.IsHierarchical() {
		labels, err := encodeLabels(ix.Labels())
		return axis{Labels: labels}, err
	}

	out := axis{
		Levels: make([][]label, ix.NLevels()),
		Codes:  make([][]int, ix.NLevels()),
		Names:  ix.Names(),
	}
	for lvl := range out.Levels {
		levels, err := encodeLabels(ix.Level(lvl))
		if err != nil {
			return axis{}, err
		}
		out.Levels[lvl] = levels
		out.Codes[lvl] = ix.Codes(lvl)
	}
	return out, nil
}

func decodeAxis(a axis) (*index.Index, error) {
	if len(a.Levels) == 0 {
		labels, err := decodeLabels(a.Labels)
		if err != nil {
			return nil, err
		}
		return index.FromLabels(labels)
	}

	levels := make([][]index.Label, len(a.Levels))
	for lvl, encoded := range a.Levels {
		decoded, err := decodeLabels(encoded)
		if err != nil {
			return nil, err
		}
		levels[lvl] = decoded
	}
	return index.NewMulti(levels, a.Codes, a.Names)
}
