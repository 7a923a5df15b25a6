package manager

import (
	"fmt"
	"slices"

	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/schema"
)

// AsMatrix interleaves every column into one matrix, one row per column in
// axis 0 order, using the common dtype of all blocks.
func (m *BlockManager) AsMatrix() (*block.Values, error) {
	return m.AsMatrixOf(nil, false)
}

// AsMatrixOf interleaves the columns of blocks whose dtype is in types
// (every block when types is nil), keeping axis 0 order. When a single
// block matches, its items are already in axis order and copyData is false,
// the result is a borrowed view of that block's buffer.
func (m *BlockManager) AsMatrixOf(types []schema.FieldType, copyData bool) (*block.Values, error) {
	if types == nil {
		if gaps := m.Gaps(); gaps.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", ErrGap, gaps)
		}
	}

	placement, err := m.placement()
	if err != nil {
		return nil, err
	}

	var selected []int
	for bi, blk := range m.blocks {
		if types == nil || slices.Contains(types, blk.Type()) {
			selected = append(selected, bi)
		}
	}

	rows := m.axes[1].Len()
	if len(selected) == 0 {
		return block.NewValues(schema.Float64FieldType, 0, rows), nil
	}

	if len(selected) == 1 && !copyData && slices.IsSorted(placement[selected[0]]) {
		return m.blocks[selected[0]].Values().View(), nil
	}

	var locs []int
	dtypes := make([]schema.FieldType, 0, len(selected))
	for _, bi := range selected {
		locs = append(locs, placement[bi]...)
		dtypes = append(dtypes, m.blocks[bi].Type())
	}
	slices.Sort(locs)

	rank := make(map[int]int, len(locs))
	for row, loc := range locs {
		rank[loc] = row
	}

	typ := schema.Common(dtypes...)
	out := block.NewValues(typ, len(locs), rows)

	for _, bi := range selected {
		values := m.blocks[bi].Values()
		if values.Type() != typ {
			if values, err = values.AsType(typ); err != nil {
				return nil, err
			}
		}

		dst := make([]int, len(placement[bi]))
		for i, loc := range placement[bi] {
			dst[i] = rank[loc]
		}
		if err := out.ScatterRows(values, dst); err != nil {
			return nil, err
		}
	}
	return out, nil
}
