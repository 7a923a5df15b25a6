// Package block implements the homogeneous-dtype sub-matrix a table is
// built from. A Block covers a subset of the table's columns (its items)
// and resolves them against the full column index it shares with its
// siblings (its ref items).
//
// Blocks never change shape. Every structural operation returns a new
// Block; only the ref items handle may be reassigned in place.
package block

import (
	"fmt"

	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/schema"
)

type Block struct {
	values   *Values
	items    *index.Index
	refItems *index.Index
}

// New validates and assembles a block. values must have one row per item,
// items must be unique and every item must be present in refItems.
func New(values *Values, items, refItems *index.Index) (*Block, error) {
	if items.Len() == 0 {
		return nil, fmt.Errorf("%w: a block needs at least one item", ErrShapeMismatch)
	}
	if values.Rows() != items.Len() {
		return nil, fmt.Errorf("%w: %d value rows for %d items", ErrShapeMismatch, values.Rows(), items.Len())
	}
	if !items.IsUnique() {
		return nil, index.Ambiguous(items.Duplicated()[0])
	}

	for i := 0; i < items.Len(); i++ {
		if !refItems.Contains(items.At(i)) {
			return nil, fmt.Errorf("%w: item %s is not in ref items", ErrInconsistentIndex, index.FormatLabel(items.At(i)))
		}
	}

	return &Block{values: values, items: items, refItems: refItems}, nil
}

// Make is New with the items given as labels.
func Make(values *Values, items []index.Label, refItems *index.Index) (*Block, error) {
	itemIndex, err := index.FromLabels(items)
	if err != nil {
		return nil, err
	}
	return New(values, itemIndex, refItems)
}

func (b *Block) Values() *Values { return b.values }

func (b *Block) Items() *index.Index { return b.items }

func (b *Block) RefItems() *index.Index { return b.refItems }

func (b *Block) Type() schema.FieldType { return b.values.Type() }

func (b *Block) Shape() (rows, cols int) { return b.values.Shape() }

// Len is the number of items.
func (b *Block) Len() int { return b.items.Len() }

// RefLocs resolves every item to its position in the ref items.
func (b *Block) RefLocs() ([]int, error) {
	locs := make([]int, b.items.Len())
	for i := range locs {
		item := b.items.At(i)

		pos, err := b.refItems.Locate(item)
		if err != nil {
			if !b.refItems.Contains(item) {
				return nil, fmt.Errorf("%w: item %s is not in ref items", ErrInconsistentIndex, index.FormatLabel(item))
			}
			return nil, err
		}
		locs[i] = pos
	}
	return locs, nil
}

// SetRefItems swaps the ref items handle. Items keep their labels; later
// RefLocs calls resolve against the new index.
func (b *Block) SetRefItems(refItems *index.Index) {
	b.refItems = refItems
}

// RenameRefItems relabels the block for a positional rename of the column
// axis: each item takes the label found at its ref position in refItems.
// Values are shared with b.
func (b *Block) RenameRefItems(refItems *index.Index) (*Block, error) {
	if refItems.Len() != b.refItems.Len() {
		return nil, fmt.Errorf("%w: rename to %d labels, ref items have %d", ErrShapeMismatch, refItems.Len(), b.refItems.Len())
	}

	locs, err := b.RefLocs()
	if err != nil {
		return nil, err
	}
	return New(b.values, refItems.Take(locs), refItems)
}

// ReindexItemsFrom restricts the block to the items also present in
// refItems, ordered as refItems orders them, and adopts refItems. Labels of
// refItems the block does not hold are not filled. It returns nil when no
// item survives.
func (b *Block) ReindexItemsFrom(refItems *index.Index) (*Block, error) {
	var rows []int
	var labels []index.Label

	for i := 0; i < refItems.Len(); i++ {
		label := refItems.At(i)

		pos, err := b.items.Locate(label)
		if err != nil {
			continue
		}
		if len(refItems.Positions(label)) > 1 {
			return nil, index.Ambiguous(label)
		}

		rows = append(rows, pos)
		labels = append(labels, label)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return Make(b.values.Take(rows), labels, refItems)
}

// Merge stacks other below b: items are b's then other's, in that order.
// Dtypes and ref items must agree and items must be disjoint.
func (b *Block) Merge(other *Block) (*Block, error) {
	if b.Type() != other.Type() {
		return nil, fmt.Errorf("%w: cannot merge %s block with %s block", ErrDtypeMismatch, b.Type(), other.Type())
	}
	if !b.refItems.Equals(other.refItems) {
		return nil, fmt.Errorf("%w: merged blocks have different ref items", ErrInconsistentIndex)
	}
	if overlap := b.items.Intersect(other.items); overlap.Len() > 0 {
		return nil, fmt.Errorf("%w: item %s is held by both blocks", ErrInconsistentIndex, index.FormatLabel(overlap.At(0)))
	}

	values, err := b.values.Stack(other.values)
	if err != nil {
		return nil, err
	}
	return New(values, b.items.Append(other.items), b.refItems)
}

// Delete drops one item. It returns nil when that was the only item.
func (b *Block) Delete(item index.Label) (*Block, error) {
	loc, err := b.items.Locate(item)
	if err != nil {
		return nil, err
	}
	if b.Len() == 1 {
		return nil, nil
	}

	keep := make([]int, 0, b.Len()-1)
	for i := 0; i < b.Len(); i++ {
		if i != loc {
			keep = append(keep, i)
		}
	}
	return New(b.values.Take(keep), b.items.Take(keep), b.refItems)
}

// SplitAt removes item and returns the items before it and the items after
// it, in items order. A side with nothing on it is nil.
func (b *Block) SplitAt(item index.Label) (left, right *Block, err error) {
	loc, err := b.items.Locate(item)
	if err != nil {
		return nil, nil, err
	}

	if loc > 0 {
		left, err = b.takeItems(seq(0, loc))
		if err != nil {
			return nil, nil, err
		}
	}
	if loc < b.Len()-1 {
		right, err = b.takeItems(seq(loc+1, b.Len()))
		if err != nil {
			return nil, nil, err
		}
	}
	return left, right, nil
}

func (b *Block) takeItems(rows []int) (*Block, error) {
	return New(b.values.Take(rows), b.items.Take(rows), b.refItems)
}

func seq(start, end int) []int {
	out := make([]int, end-start)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// Copy duplicates the block. A shallow copy borrows the value buffer, a
// deep one owns a fresh copy. Items and ref items are shared either way.
func (b *Block) Copy(deep bool) *Block {
	values := b.values.View()
	if deep {
		values = b.values.Clone()
	}
	return &Block{values: values, items: b.items, refItems: b.refItems}
}

// Column returns a view of one item's values.
func (b *Block) Column(item index.Label) (*Vector, error) {
	loc, err := b.items.Locate(item)
	if err != nil {
		return nil, err
	}
	return b.values.Row(loc), nil
}

// IGet returns a view of the item at position i of items.
func (b *Block) IGet(i int) *Vector {
	return b.values.Row(i)
}

// SetColumn overwrites one item's values in place. The vector must have
// the block's dtype; anything else is the manager's promotion business.
func (b *Block) SetColumn(item index.Label, vec *Vector) error {
	loc, err := b.items.Locate(item)
	if err != nil {
		return err
	}
	return b.values.SetRow(loc, vec)
}

// ReindexAxis gathers row axis positions; -1 yields a missing value.
func (b *Block) ReindexAxis(indexer []int) *Block {
	return &Block{values: b.values.TakeCols(indexer), items: b.items, refItems: b.refItems}
}

// SliceAxis keeps row axis positions [start, end).
func (b *Block) SliceAxis(start, end int) *Block {
	return &Block{values: b.values.SliceCols(start, end), items: b.items, refItems: b.refItems}
}

// AsType converts the block's values up the promotion order.
func (b *Block) AsType(typ schema.FieldType) (*Block, error) {
	values, err := b.values.AsType(typ)
	if err != nil {
		return nil, err
	}
	return &Block{values: values, items: b.items, refItems: b.refItems}, nil
}

func (b *Block) Equal(other *Block) bool {
	return b.values.Equal(other.values) &&
		b.items.Equals(other.items) &&
		b.refItems.Equals(other.refItems)
}

func (b *Block) String() string {
	rows, cols := b.Shape()
	return fmt.Sprintf("Block(%s): %s, %d x %d", b.Type(), b.items, rows, cols)
}
