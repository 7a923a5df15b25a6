package main

import (
	"github.com/dot5enko/blockframe/block"
	"github.com/dot5enko/blockframe/index"
	"github.com/dot5enko/blockframe/manager"
)

const sampleRows = 10

// sampleManager builds the demo table: floats a, c, e; objects b, d;
// bool f; int g; complex h.
func sampleManager(config manager.ManagerConfig) (*manager.BlockManager, error) {
	items := index.Strings("a", "b", "c", "d", "e", "f", "g", "h")

	floats := make([]any, 3)
	for i := range floats {
		col := make([]float64, sampleRows)
		for j := range col {
			col[j] = float64(i)
		}
		floats[i] = col
	}

	objects := make([]any, 2)
	for i, word := range []string{"foo", "bar"} {
		col := make([]string, sampleRows)
		for j := range col {
			col[j] = word
		}
		objects[i] = col
	}

	bools := make([]bool, sampleRows)
	ints := make([]int64, sampleRows)
	complexes := make([]complex128, sampleRows)
	for j := 0; j < sampleRows; j++ {
		bools[j] = j%2 == 0
		ints[j] = int64(j * j)
		complexes[j] = complex(0, float64(j))
	}

	defs := []struct {
		items []index.Label
		data  []any
	}{
		{[]index.Label{"a", "c", "e"}, floats},
		{[]index.Label{"b", "d"}, objects},
		{[]index.Label{"f"}, []any{bools}},
		{[]index.Label{"g"}, []any{ints}},
		{[]index.Label{"h"}, []any{complexes}},
	}

	blocks := make([]*block.Block, len(defs))
	for i, def := range defs {
		values, err := block.ValuesFromItems(def.data...)
		if err != nil {
			return nil, err
		}
		if blocks[i], err = block.Make(values, def.items, items); err != nil {
			return nil, err
		}
	}

	return manager.New(blocks, items, index.Range(sampleRows), config)
}
