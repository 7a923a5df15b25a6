// Package manager orchestrates the blocks of one table. A BlockManager owns
// an ordered list of blocks and the two axes: axis 0 lists the columns and
// is shared by identity with every block as its ref items, axis 1 labels
// the rows.
package manager

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/schema"
)

type ManagerConfig struct {
	Logger *slog.Logger

	// SkipVerify trusts the caller's blocks and skips the coverage check.
	SkipVerify bool

	// AllowGaps accepts axis 0 labels that no block holds. Reindexing to
	// labels the table does not have produces such a manager.
	AllowGaps bool
}

type BlockManager struct {
	blocks []*block.Block
	axes   [2]*index.Index

	config ManagerConfig
	log    *slog.Logger
}

// New adopts blocks under items (axis 0) and rows (axis 1). Every block's
// ref items are reassigned to items, so the blocks must not be shared with
// another manager afterwards. On error the blocks are left untouched.
func New(blocks []*block.Block, items, rows *index.Index, config ManagerConfig) (*BlockManager, error) {
	if items == nil || rows == nil {
		return nil, fmt.Errorf("%w: both axes are required", ErrAxis)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &BlockManager{
		blocks: make([]*block.Block, len(blocks)),
		axes:   [2]*index.Index{items, rows},
		config: config,
		log:    logger,
	}
	copy(m.blocks, blocks)

	for _, blk := range m.blocks {
		if blk == nil {
			return nil, fmt.Errorf("%w: nil block", block.ErrInconsistentIndex)
		}
	}

	previous := make([]*index.Index, len(m.blocks))
	for i, blk := range m.blocks {
		previous[i] = blk.RefItems()
		blk.SetRefItems(items)
	}

	if !config.SkipVerify {
		if err := m.Verify(); err != nil {
			// rejected blocks go back to their own ref items
			for i, blk := range m.blocks {
				blk.SetRefItems(previous[i])
			}
			return nil, err
		}
	}
	return m, nil
}

// derive builds a manager sharing this one's configuration.
func (m *BlockManager) derive(blocks []*block.Block, items, rows *index.Index, gaps bool) (*BlockManager, error) {
	config := m.config
	config.AllowGaps = config.AllowGaps || gaps
	config.Logger = m.log
	return New(blocks, items, rows, config)
}

// Blocks returns the block list. The blocks themselves are shared.
func (m *BlockManager) Blocks() []*block.Block {
	out := make([]*block.Block, len(m.blocks))
	copy(out, m.blocks)
	return out
}

func (m *BlockManager) Axis(axis int) (*index.Index, error) {
	if axis != 0 && axis != 1 {
		return nil, fmt.Errorf("%w: %d", ErrAxis, axis)
	}
	return m.axes[axis], nil
}

// Items is axis 0.
func (m *BlockManager) Items() *index.Index { return m.axes[0] }

// Rows is axis 1.
func (m *BlockManager) Rows() *index.Index { return m.axes[1] }

func (m *BlockManager) Config() ManagerConfig { return m.config }

func (m *BlockManager) NBlocks() int { return len(m.blocks) }

// Len is the number of columns.
func (m *BlockManager) Len() int { return m.axes[0].Len() }

// Shape returns the column and row counts.
func (m *BlockManager) Shape() (items, rows int) {
	return m.axes[0].Len(), m.axes[1].Len()
}

func (m *BlockManager) Contains(label index.Label) bool {
	return m.axes[0].Contains(label)
}

// owner returns the position of the block holding label, -1 for none.
func (m *BlockManager) owner(label index.Label) int {
	for bi, blk := range m.blocks {
		if blk.Items().Contains(label) {
			return bi
		}
	}
	return -1
}

// Get returns a view of one column. Writes to it reach the block.
func (m *BlockManager) Get(label index.Label) (*block.Vector, error) {
	if _, err := m.axes[0].Locate(label); err != nil {
		return nil, err
	}

	bi := m.owner(label)
	if bi < 0 {
		return nil, index.Missing(label)
	}
	return m.blocks[bi].Column(label)
}

// IGet returns the column at position i of axis 0.
func (m *BlockManager) IGet(i int) (*block.Vector, error) {
	if i < 0 || i >= m.axes[0].Len() {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, i, m.axes[0].Len())
	}

	label := m.axes[0].At(i)
	if len(m.axes[0].Positions(label)) > 1 {
		return nil, index.Ambiguous(label)
	}
	return m.Get(label)
}

// GetScalar reads one cell by column label and row label.
func (m *BlockManager) GetScalar(label, row index.Label) (any, error) {
	vec, err := m.Get(label)
	if err != nil {
		return nil, err
	}

	pos, err := m.axes[1].Locate(row)
	if err != nil {
		return nil, err
	}
	return vec.At(pos), nil
}

// Set writes a column. A column of the same dtype is overwritten in place;
// a dtype change moves the column out of its block into a new one at the
// end; an unknown label is appended to axis 0.
func (m *BlockManager) Set(label index.Label, vec *block.Vector) error {
	if vec.Len() != m.axes[1].Len() {
		return fmt.Errorf("%w: column of %d values for %d rows", block.ErrShapeMismatch, vec.Len(), m.axes[1].Len())
	}

	if !m.axes[0].Contains(label) {
		return m.insert(label, vec)
	}
	if _, err := m.axes[0].Locate(label); err != nil {
		return err
	}

	bi := m.owner(label)
	if bi < 0 {
		blk, err := itemBlock(vec, label, m.axes[0])
		if err != nil {
			return err
		}

		m.log.Debug("filling gap", "item", index.FormatLabel(label), "dtype", vec.Type())
		m.blocks = append(m.blocks, blk)
		return nil
	}

	current := m.blocks[bi]
	if current.Type() == vec.Type() {
		return current.SetColumn(label, vec)
	}

	left, right, err := current.SplitAt(label)
	if err != nil {
		return err
	}
	blk, err := itemBlock(vec, label, m.axes[0])
	if err != nil {
		return err
	}

	blocks := make([]*block.Block, 0, len(m.blocks)+2)
	blocks = append(blocks, m.blocks[:bi]...)
	for _, part := range []*block.Block{left, right} {
		if part != nil {
			blocks = append(blocks, part)
		}
	}
	blocks = append(blocks, m.blocks[bi+1:]...)
	blocks = append(blocks, blk)

	m.log.Debug("column dtype changed",
		"item", index.FormatLabel(label),
		"from", current.Type(),
		"to", vec.Type(),
	)

	m.blocks = blocks
	return nil
}

func (m *BlockManager) insert(label index.Label, vec *block.Vector) error {
	added, err := index.FromLabels([]index.Label{label})
	if err != nil {
		return err
	}
	items := m.axes[0].Append(added)

	blk, err := itemBlock(vec, label, items)
	if err != nil {
		return err
	}

	for _, b := range m.blocks {
		b.SetRefItems(items)
	}
	m.blocks = append(m.blocks, blk)
	m.axes[0] = items
	return nil
}

func itemBlock(vec *block.Vector, label index.Label, ref *index.Index) (*block.Block, error) {
	values, err := block.ValuesFromVectors(vec)
	if err != nil {
		return nil, err
	}
	return block.Make(values, []index.Label{label}, ref)
}

// Delete removes a column from axis 0 and from its block.
func (m *BlockManager) Delete(label index.Label) error {
	if _, err := m.axes[0].Locate(label); err != nil {
		return err
	}

	items, err := m.axes[0].Drop(label)
	if err != nil {
		return err
	}

	blocks := m.blocks
	if bi := m.owner(label); bi >= 0 {
		shrunk, err := m.blocks[bi].Delete(label)
		if err != nil {
			return err
		}

		blocks = make([]*block.Block, 0, len(m.blocks))
		blocks = append(blocks, m.blocks[:bi]...)
		if shrunk != nil {
			blocks = append(blocks, shrunk)
		}
		blocks = append(blocks, m.blocks[bi+1:]...)
	}

	for _, b := range blocks {
		b.SetRefItems(items)
	}
	m.blocks = blocks
	m.axes[0] = items
	return nil
}

// SetAxis relabels an axis without moving data. The new index must have
// the same length. Relabeling axis 0 renames block items positionally.
func (m *BlockManager) SetAxis(axis int, ix *index.Index) error {
	if axis != 0 && axis != 1 {
		return fmt.Errorf("%w: %d", ErrAxis, axis)
	}
	if ix.Len() != m.axes[axis].Len() {
		return fmt.Errorf("%w: axis %d has %d labels, got %d", block.ErrShapeMismatch, axis, m.axes[axis].Len(), ix.Len())
	}

	if axis == 1 {
		m.axes[1] = ix
		return nil
	}

	renamed := make([]*block.Block, len(m.blocks))
	for i, blk := range m.blocks {
		r, err := blk.RenameRefItems(ix)
		if err != nil {
			return err
		}
		renamed[i] = r
	}

	m.blocks = renamed
	m.axes[0] = ix
	return nil
}

// IsIndexedLike reports whether both managers have equal row axes, which
// is what combining them column-wise requires.
func (m *BlockManager) IsIndexedLike(other *BlockManager) bool {
	return m.axes[1].Equals(other.axes[1])
}

// Copy duplicates the manager. A shallow copy borrows every block buffer.
// Axes are shared either way.
func (m *BlockManager) Copy(deep bool) *BlockManager {
	blocks := make([]*block.Block, len(m.blocks))
	for i, blk := range m.blocks {
		blocks[i] = blk.Copy(deep)
	}

	return &BlockManager{
		blocks: blocks,
		axes:   m.axes,
		config: m.config,
		log:    m.log,
	}
}

// IsMixedDtype reports whether blocks of more than one dtype are present.
func (m *BlockManager) IsMixedDtype() bool {
	if len(m.blocks) == 0 {
		return false
	}

	first := m.blocks[0].Type()
	for _, blk := range m.blocks[1:] {
		if blk.Type() != first {
			return true
		}
	}
	return false
}

// placement resolves every block's items to axis 0 positions. It needs a
// unique axis 0.
func (m *BlockManager) placement() ([][]int, error) {
	if !m.axes[0].IsUnique() {
		return nil, index.Ambiguous(m.axes[0].Duplicated()[0])
	}

	out := make([][]int, len(m.blocks))
	for bi, blk := range m.blocks {
		locs, err := blk.RefLocs()
		if err != nil {
			return nil, err
		}
		out[bi] = locs
	}
	return out, nil
}

// BlockIDVector maps every axis 0 position to the block holding it, -1
// for a gap.
func (m *BlockManager) BlockIDVector() ([]int, error) {
	placement, err := m.placement()
	if err != nil {
		return nil, err
	}

	out := make([]int, m.axes[0].Len())
	for i := range out {
		out[i] = -1
	}
	for bi, locs := range placement {
		for _, loc := range locs {
			out[loc] = bi
		}
	}
	return out, nil
}

// ItemDtypes lists the dtype of every column in axis 0 order. Gaps report
// schema.InvalidFieldType.
func (m *BlockManager) ItemDtypes() ([]schema.FieldType, error) {
	ids, err := m.BlockIDVector()
	if err != nil {
		return nil, err
	}

	out := make([]schema.FieldType, len(ids))
	for i, bi := range ids {
		if bi < 0 {
			out[i] = schema.InvalidFieldType
			continue
		}
		out[i] = m.blocks[bi].Type()
	}
	return out, nil
}

// Equal compares axes and every column's dtype and values. Block layout
// does not matter.
func (m *BlockManager) Equal(other *BlockManager) bool {
	if !m.axes[0].Equals(other.axes[0]) || !m.axes[1].Equals(other.axes[1]) {
		return false
	}

	if !m.axes[0].IsUnique() {
		if len(m.blocks) != len(other.blocks) {
			return false
		}
		for i, blk := range m.blocks {
			if !blk.Equal(other.blocks[i]) {
				return false
			}
		}
		return true
	}

	for i := 0; i < m.axes[0].Len(); i++ {
		label := m.axes[0].At(i)

		mine, err := m.Get(label)
		theirs, otherErr := other.Get(label)
		if (err == nil) != (otherErr == nil) {
			return false
		}
		if err == nil && !mine.Equal(theirs) {
			return false
		}
	}
	return true
}

func (m *BlockManager) String() string {
	var sb strings.Builder

	sb.WriteString("BlockManager\n")
	fmt.Fprintf(&sb, "Items: %s\n", m.axes[0])
	fmt.Fprintf(&sb, "Axis 1: %s\n", m.axes[1])
	for _, blk := range m.blocks {
		sb.WriteString(blk.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
