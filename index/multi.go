package index

import (
	"fmt"
	"slices"

	"github.com/dot5enko/blockframe/lists"
)

// NewMulti builds a hierarchical index. Row i is the tuple
// (levels[0][codes[0][i]], levels[1][codes[1][i]], ...).
func NewMulti(levels [][]Label, codes [][]int, names []string) (*Index, error) {
	if len(levels) < 2 || len(levels) > MaxLevels {
		return nil, fmt.Errorf("hierarchical index needs 2..%d levels, got %d", MaxLevels, len(levels))
	}
	if len(codes) != len(levels) {
		return nil, fmt.Errorf("got %d code arrays for %d levels", len(codes), len(levels))
	}
	if names != nil && len(names) != len(levels) {
		return nil, fmt.Errorf("got %d names for %d levels", len(names), len(levels))
	}

	rows := len(codes[0])
	ownedLevels := make([][]Label, len(levels))
	ownedCodes := make([][]int, len(codes))

	for lvl := range levels {
		if len(codes[lvl]) != rows {
			return nil, fmt.Errorf("level %d has %d codes, level 0 has %d", lvl, len(codes[lvl]), rows)
		}

		ownedLevels[lvl] = make([]Label, len(levels[lvl]))
		for i, l := range levels[lvl] {
			if err := checkComparable(l); err != nil {
				return nil, err
			}
			ownedLevels[lvl][i] = normalize(l)
		}
		if lists.HasDuplicates(ownedLevels[lvl]) {
			return nil, fmt.Errorf("level %d has duplicate values", lvl)
		}

		for _, c := range codes[lvl] {
			if c < 0 || c >= len(levels[lvl]) {
				return nil, fmt.Errorf("code %d out of range for level %d", c, lvl)
			}
		}
		ownedCodes[lvl] = slices.Clone(codes[lvl])
	}

	labels := make([]Label, rows)
	values := make([]Label, len(levels))
	for row := range labels {
		for lvl := range levels {
			values[lvl] = ownedLevels[lvl][ownedCodes[lvl][row]]
		}
		labels[row] = T(values...)
	}

	ix := build(labels)
	ix.levels = ownedLevels
	ix.codes = ownedCodes
	ix.names = slices.Clone(names)
	return ix, nil
}

func (ix *Index) IsHierarchical() bool { return ix.levels != nil }

func (ix *Index) NLevels() int {
	if ix.levels == nil {
		return 1
	}
	return len(ix.levels)
}

// Level returns a copy of the distinct values of one level.
func (ix *Index) Level(lvl int) []Label { return slices.Clone(ix.levels[lvl]) }

// Codes returns a copy of the per-row codes of one level.
func (ix *Index) Codes(lvl int) []int { return slices.Clone(ix.codes[lvl]) }

func (ix *Index) Names() []string { return slices.Clone(ix.names) }

// SliceLocs returns the contiguous range [start, end) covered by key. For
// a hierarchical index key selects on the outermost level and every row
// carrying it must be adjacent, otherwise ErrNotGrouped is returned. A
// full Tuple key, or any key on a flat index, resolves to a single row.
func (ix *Index) SliceLocs(key Label) (int, int, error) {
	if _, isTuple := key.(Tuple); !ix.IsHierarchical() || isTuple {
		pos, err := ix.Locate(key)
		if err != nil {
			return -1, -1, err
		}
		return pos, pos + 1, nil
	}

	code := slices.Index(ix.levels[0], normalize(key))
	if code < 0 {
		return -1, -1, Missing(key)
	}

	start, end := -1, -1
	for row, c := range ix.codes[0] {
		if c != code {
			continue
		}
		if start < 0 {
			start = row
		} else if row != end {
			return -1, -1, fmt.Errorf("%w: %s", ErrNotGrouped, FormatLabel(key))
		}
		end = row + 1
	}

	if start < 0 {
		return -1, -1, Missing(key)
	}
	return start, end, nil
}
