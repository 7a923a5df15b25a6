package codec

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/compression"
	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const N = 6

func itemBlock(t *testing.T, ref *index.Index, labels []index.Label, items ...any) *block.Block {
	t.Helper()

	values, err := block.ValuesFromItems(items...)
	require.NoError(t, err)
	blk, err := block.Make(values, labels, ref)
	require.NoError(t, err)
	return blk
}

func sampleManager(t *testing.T) *manager.BlockManager {
	t.Helper()

	ref := index.Strings("a", "b", "c", "d", "e", "f", "g", "h")
	base := time.Date(2012, 6, 1, 0, 0, 0, 0, time.UTC)

	blocks := []*block.Block{
		itemBlock(t, ref, []index.Label{"a", "c"},
			[]float64{0, 1, 2, 3, 4, 5}, []float64{0.5, -1, 2e10, 3, 4, 5}),
		itemBlock(t, ref, []index.Label{"b", "d"},
			[]any{"foo", "א", nil, 1, int64(2), 2.5}, []any{true, 1i, base, "x", "y", "z"}),
		itemBlock(t, ref, []index.Label{"f"}, []bool{true, false, true, true, false, false}),
		itemBlock(t, ref, []index.Label{"g"}, []int64{-3, -2, -1, 0, 1, 2}),
		itemBlock(t, ref, []index.Label{"h"}, []complex128{1i, 2, 3 + 3i, 4, 5, 6}),
		itemBlock(t, ref, []index.Label{"e"}, []time.Time{base, base, base, base, base, base.Add(time.Second)}),
	}

	mgr, err := manager.New(blocks, ref, index.Range(N), manager.ManagerConfig{})
	require.NoError(t, err)
	return mgr
}

func TestRoundTrip(t *testing.T) {
	mgr := sampleManager(t)

	for _, kind := range []compression.Kind{compression.None, compression.Lz4, compression.Zstd} {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := Marshal(mgr, Options{Compression: kind})
			require.NoError(t, err)

			mgr2, err := Unmarshal(data)
			require.NoError(t, err)

			assert.True(t, mgr.Equal(mgr2))
			assert.Equal(t, mgr.NBlocks(), mgr2.NBlocks())

			blocks := mgr2.Blocks()
			assert.Same(t, blocks[0].RefItems(), blocks[1].RefItems())
			for _, blk := range blocks {
				assert.Same(t, mgr2.Items(), blk.RefItems())
			}
		})
	}
}

func TestRoundTripHierarchicalRows(t *testing.T) {
	mgr := sampleManager(t)

	rows, err := index.NewMulti(
		[][]index.Label{{"foo", "bar"}, {1, 2, 3}},
		[][]int{{0, 0, 0, 1, 1, 1}, {0, 1, 2, 0, 1, 2}},
		[]string{"first", "second"},
	)
	require.NoError(t, err)
	require.NoError(t, mgr.SetAxis(1, rows))

	data, err := Marshal(mgr, Options{Compression: compression.Zstd})
	require.NoError(t, err)
	mgr2, err := Unmarshal(data)
	require.NoError(t, err)

	assert.True(t, mgr2.Rows().IsHierarchical())
	assert.Equal(t, []string{"first", "second"}, mgr2.Rows().Names())

	xs, err := mgr2.XS("bar", 1)
	require.NoError(t, err)
	_, n := xs.Shape()
	assert.Equal(t, 3, n)
}

func TestRoundTripGaps(t *testing.T) {
	reindexed, err := sampleManager(t).ReindexItems(index.New("a", "zz", 7))
	require.NoError(t, err)

	data, err := Marshal(reindexed, Options{})
	require.NoError(t, err)
	mgr2, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, []index.Label{"zz", 7}, mgr2.Gaps().Labels())
	assert.True(t, reindexed.Equal(mgr2))
}

func TestUnsupportedObject(t *testing.T) {
	ref := index.Strings("a")
	blk := itemBlock(t, ref, []index.Label{"a"}, []any{[]int{1}})
	mgr, err := manager.New([]*block.Block{blk}, ref, index.Range(1), manager.ManagerConfig{})
	require.NoError(t, err)

	_, err = Marshal(mgr, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestBadFrames(t *testing.T) {
	_, err := Unmarshal([]byte("nope"))
	assert.ErrorIs(t, err, ErrInvalidMagic)

	data, err := Marshal(sampleManager(t), Options{})
	require.NoError(t, err)

	bumped := append([]byte(nil), data...)
	bumped[4] = 9
	_, err = Unmarshal(bumped)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Unmarshal(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrCorrupt)

	packed, err := Marshal(sampleManager(t), Options{Compression: compression.Lz4})
	require.NoError(t, err)

	for _, rawLen := range []uint64{1 << 62, 1 << 63, MaxPayload + 1, 5} {
		oversized := append([]byte(nil), packed...)
		binary.LittleEndian.PutUint64(oversized[7:15], rawLen)
		_, err = Unmarshal(oversized)
		assert.ErrorIs(t, err, ErrCorrupt, rawLen)
	}
}
