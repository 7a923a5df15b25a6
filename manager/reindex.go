package manager

import (
	"fmt"
	"slices"

	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/schema"
)

// ReindexItems projects the table onto labels. Blocks are consolidated
// first, so the result has at most one block per dtype. Labels the table
// does not hold become gaps; see Gaps.
func (m *BlockManager) ReindexItems(labels *index.Index) (*BlockManager, error) {
	// projection gathers fresh buffers, so a shallow copy is enough here
	cons := m.Copy(false)
	if err := cons.ConsolidateInPlace(); err != nil {
		return nil, err
	}

	blocks := make([]*block.Block, 0, len(cons.blocks))
	for _, blk := range cons.blocks {
		projected, err := blk.ReindexItemsFrom(labels)
		if err != nil {
			return nil, err
		}
		if projected != nil {
			blocks = append(blocks, projected)
		}
	}

	out, err := m.derive(blocks, labels, m.axes[1], true)
	if err != nil {
		return nil, err
	}

	if gaps := out.Gaps(); gaps.Len() > 0 {
		m.log.Debug("reindex left gaps", "gaps", gaps.String())
	}
	return out, nil
}

// ReindexAxis conforms one axis to keys. Row keys missing from axis 1 get
// missing values, promoting bool and int64 blocks to float64.
func (m *BlockManager) ReindexAxis(keys *index.Index, axis int) (*BlockManager, error) {
	switch axis {
	case 0:
		return m.ReindexItems(keys)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d", ErrAxis, axis)
	}

	indexer, err := m.axes[1].Indexer(keys)
	if err != nil {
		return nil, err
	}

	blocks := make([]*block.Block, len(m.blocks))
	for i, blk := range m.blocks {
		blocks[i] = blk.ReindexAxis(indexer)
	}
	return m.derive(blocks, m.axes[0], keys, false)
}

// GetSlice keeps positions [start, end) of one axis.
func (m *BlockManager) GetSlice(start, end, axis int) (*BlockManager, error) {
	if axis != 0 && axis != 1 {
		return nil, fmt.Errorf("%w: %d", ErrAxis, axis)
	}
	if n := m.axes[axis].Len(); start < 0 || end > n || start > end {
		return nil, fmt.Errorf("%w: slice [%d:%d] of axis %d with %d labels", ErrOutOfRange, start, end, axis, n)
	}

	if axis == 0 {
		items := m.axes[0].Slice(start, end)

		blocks := make([]*block.Block, 0, len(m.blocks))
		for _, blk := range m.blocks {
			projected, err := blk.ReindexItemsFrom(items)
			if err != nil {
				return nil, err
			}
			if projected != nil {
				blocks = append(blocks, projected)
			}
		}
		return m.derive(blocks, items, m.axes[1], false)
	}

	blocks := make([]*block.Block, len(m.blocks))
	for i, blk := range m.blocks {
		blocks[i] = blk.SliceAxis(start, end)
	}
	return m.derive(blocks, m.axes[0], m.axes[1].Slice(start, end), false)
}

// XS takes the cross-section under key. On a hierarchical axis a key on
// the outermost level selects every row carrying it; those rows must be
// adjacent or index.ErrNotGrouped is returned.
func (m *BlockManager) XS(key index.Label, axis int) (*BlockManager, error) {
	if axis != 0 && axis != 1 {
		return nil, fmt.Errorf("%w: %d", ErrAxis, axis)
	}

	start, end, err := m.axes[axis].SliceLocs(key)
	if err != nil {
		return nil, err
	}
	return m.GetSlice(start, end, axis)
}

// GetNumericData returns a manager over the blocks whose dtype is in types,
// int64, float64 and complex128 when types is empty. Without copyData the
// blocks borrow this manager's buffers, so writes show through.
func (m *BlockManager) GetNumericData(types []schema.FieldType, copyData bool) (*BlockManager, error) {
	if len(types) == 0 {
		for _, typ := range schema.AllFieldTypes {
			if typ.IsNumeric() {
				types = append(types, typ)
			}
		}
	}

	var selected []*block.Block
	var labels []index.Label
	for _, blk := range m.blocks {
		if !slices.Contains(types, blk.Type()) {
			continue
		}
		selected = append(selected, blk.Copy(copyData))
		labels = append(labels, blk.Items().Labels()...)
	}

	keep, err := index.FromLabels(labels)
	if err != nil {
		return nil, err
	}

	// axis 0 order, not block order
	items := m.axes[0].Intersect(keep)
	if !m.axes[0].IsUnique() {
		items = keep
	}
	return m.derive(selected, items, m.axes[1], false)
}
