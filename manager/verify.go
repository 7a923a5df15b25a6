package manager

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/index"
)

// Verify checks the structural invariants: every block shares axis 0 by
// identity, has the row axis width and at least one item, and the block
// items cover axis 0 exactly once per label occurrence. Labels without a
// block are accepted only when the manager allows gaps.
func (m *BlockManager) Verify() error {
	rows := m.axes[1].Len()

	for bi, blk := range m.blocks {
		if !blk.RefItems().Same(m.axes[0]) {
			return fmt.Errorf("%w: block %d does not share axis 0", block.ErrInconsistentIndex, bi)
		}
		if blk.Len() == 0 {
			return fmt.Errorf("%w: block %d has no items", block.ErrInconsistentIndex, bi)
		}
		if _, cols := blk.Shape(); cols != rows {
			return fmt.Errorf("%w: block %d has %d columns, axis 1 has %d", block.ErrShapeMismatch, bi, cols, rows)
		}
	}

	covered, err := m.coverage()
	if err != nil {
		return err
	}

	if !m.config.AllowGaps && covered.GetCardinality() != uint64(m.axes[0].Len()) {
		missing := m.uncovered(covered)
		return fmt.Errorf("%w: label %s has no block", block.ErrInconsistentIndex, index.FormatLabel(m.axes[0].At(missing[0])))
	}
	return nil
}

// coverage places every block item on a distinct axis 0 position holding
// the same label and returns the covered positions.
func (m *BlockManager) coverage() (*roaring.Bitmap, error) {
	covered := roaring.New()

	for _, blk := range m.blocks {
		items := blk.Items()

		for i := 0; i < items.Len(); i++ {
			item := items.At(i)

			positions := m.axes[0].Positions(item)
			if len(positions) == 0 {
				return covered, fmt.Errorf("%w: item %s is not in axis 0", block.ErrInconsistentIndex, index.FormatLabel(item))
			}

			placed := false
			for _, pos := range positions {
				if covered.CheckedAdd(uint32(pos)) {
					placed = true
					break
				}
			}
			if !placed {
				return covered, fmt.Errorf("%w: item %s is held by more blocks than axis 0 lists it", block.ErrInconsistentIndex, index.FormatLabel(item))
			}
		}
	}
	return covered, nil
}

func (m *BlockManager) uncovered(covered *roaring.Bitmap) []int {
	all := roaring.New()
	all.AddRange(0, uint64(m.axes[0].Len()))
	all.AndNot(covered)

	out := make([]int, 0, all.GetCardinality())
	it := all.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Gaps lists the axis 0 labels no block holds, in axis order.
func (m *BlockManager) Gaps() *index.Index {
	// a verified manager always covers cleanly; a partial bitmap is the
	// best answer for one built with SkipVerify
	covered, _ := m.coverage()
	return m.axes[0].Take(m.uncovered(covered))
}
