package manager

import (
	"slices"

	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/schema"
)

// IsConsolidated reports whether no dtype is spread over several blocks.
func (m *BlockManager) IsConsolidated() bool {
	seen := make(map[schema.FieldType]bool, len(m.blocks))
	for _, blk := range m.blocks {
		if seen[blk.Type()] {
			return false
		}
		seen[blk.Type()] = true
	}
	return true
}

// Consolidate returns a copy with one block per dtype; see ConsolidateInPlace.
// The copy owns all of its buffers.
func (m *BlockManager) Consolidate() (*BlockManager, error) {
	out := m.Copy(false)
	if err := out.ConsolidateInPlace(); err != nil {
		return nil, err
	}

	// blocks that needed no merge still borrow from m
	for i, blk := range out.blocks {
		if blk.Values().Ownership() == block.Borrowed {
			out.blocks[i] = blk.Copy(true)
		}
	}
	return out, nil
}

// ConsolidateInPlace merges same-dtype blocks. Blocks come out ordered by
// dtype and, on a unique axis 0, with items in axis order. Running it on a
// consolidated manager keeps every block as is.
func (m *BlockManager) ConsolidateInPlace() error {
	groups := make(map[schema.FieldType][]*block.Block, len(m.blocks))
	for _, blk := range m.blocks {
		groups[blk.Type()] = append(groups[blk.Type()], blk)
	}

	ordered := m.axes[0].IsUnique()
	blocks := make([]*block.Block, 0, len(groups))

	for _, typ := range schema.AllFieldTypes {
		group := groups[typ]
		if len(group) == 0 {
			continue
		}

		merged := group[0]
		for _, next := range group[1:] {
			var err error
			if merged, err = merged.Merge(next); err != nil {
				return err
			}
		}

		if ordered {
			locs, err := merged.RefLocs()
			if err != nil {
				return err
			}
			if !slices.IsSorted(locs) {
				if merged, err = merged.ReindexItemsFrom(m.axes[0]); err != nil {
					return err
				}
			}
		}
		blocks = append(blocks, merged)
	}

	if len(blocks) != len(m.blocks) {
		m.log.Debug("consolidated blocks", "before", len(m.blocks), "after", len(blocks))
	}
	m.blocks = blocks
	return nil
}
