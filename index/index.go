// Package index holds the ordered label sets used as table axes.
//
// An Index is immutable once built. Operations that look like edits return
// a new Index with a fresh identity, so holders that share a pointer never
// observe a change underneath them.
package index

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dot5enko/blockframe/lists"
	"github.com/google/uuid"
)

type Index struct {
	id     uuid.UUID
	labels []Label
	lookup map[Label][]int

	// set only for hierarchical indexes
	levels [][]Label
	codes  [][]int
	names  []string
}

// FromLabels builds an index over a copy of labels.
func FromLabels(labels []Label) (*Index, error) {
	owned := make([]Label, len(labels))
	for i, l := range labels {
		if err := checkComparable(l); err != nil {
			return nil, err
		}
		owned[i] = normalize(l)
	}
	return build(owned), nil
}

// New is FromLabels for literal label lists; it panics on a non comparable label.
func New(labels ...Label) *Index {
	ix, err := FromLabels(labels)
	if err != nil {
		panic(err)
	}
	return ix
}

func Strings(labels ...string) *Index {
	owned := make([]Label, len(labels))
	for i, l := range labels {
		owned[i] = l
	}
	return build(owned)
}

func Ints(labels ...int) *Index {
	owned := make([]Label, len(labels))
	for i, l := range labels {
		owned[i] = l
	}
	return build(owned)
}

// Range returns the integer index 0..n-1.
func Range(n int) *Index {
	owned := make([]Label, n)
	for i := range owned {
		owned[i] = i
	}
	return build(owned)
}

func build(labels []Label) *Index {
	lookup := make(map[Label][]int, len(labels))
	for pos, l := range labels {
		lookup[l] = append(lookup[l], pos)
	}

	return &Index{
		id:     uuid.New(),
		labels: labels,
		lookup: lookup,
	}
}

// ID identifies this index object. Two indexes with equal labels built
// separately have different ids.
func (ix *Index) ID() uuid.UUID { return ix.id }

func (ix *Index) Len() int { return len(ix.labels) }

func (ix *Index) At(pos int) Label { return ix.labels[pos] }

// Labels returns a copy of the label sequence.
func (ix *Index) Labels() []Label { return slices.Clone(ix.labels) }

func (ix *Index) Contains(l Label) bool {
	_, ok := ix.find(l)
	return ok
}

// find looks l up; a label that cannot key a map is never present.
func (ix *Index) find(l Label) ([]int, bool) {
	if checkComparable(l) != nil {
		return nil, false
	}
	positions, ok := ix.lookup[normalize(l)]
	return positions, ok
}

// Positions returns every position holding l, in order.
func (ix *Index) Positions(l Label) []int {
	positions, _ := ix.find(l)
	return slices.Clone(positions)
}

// Locate resolves l to its single position.
func (ix *Index) Locate(l Label) (int, error) {
	positions, ok := ix.find(l)
	if !ok {
		return -1, Missing(l)
	}
	if len(positions) > 1 {
		return -1, Ambiguous(l)
	}
	return positions[0], nil
}

func (ix *Index) IsUnique() bool {
	return len(ix.lookup) == len(ix.labels)
}

// Duplicated returns the labels that occur more than once, first occurrence order.
func (ix *Index) Duplicated() []Label {
	counts := lists.Counts(ix.labels)

	var out []Label
	for _, l := range ix.labels {
		if counts[l] > 1 {
			out = append(out, l)
			counts[l] = 0
		}
	}
	return out
}

// Equals compares label sequences, not identity.
func (ix *Index) Equals(other *Index) bool {
	if ix == other {
		return true
	}
	if other == nil || len(ix.labels) != len(other.labels) {
		return false
	}
	for i, l := range ix.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// Same reports identity, which is what sibling blocks must share.
func (ix *Index) Same(other *Index) bool { return ix == other }

// Append concatenates indexes, keeping duplicates.
func (ix *Index) Append(others ...*Index) *Index {
	total := len(ix.labels)
	for _, o := range others {
		total += o.Len()
	}

	out := make([]Label, 0, total)
	out = append(out, ix.labels...)
	for _, o := range others {
		out = append(out, o.labels...)
	}
	return build(out)
}

// Union keeps this index's order and appends labels only found in other.
func (ix *Index) Union(other *Index) *Index {
	return build(lists.Union(ix.labels, other.labels))
}

// Intersect keeps the labels of this index that are also in other.
func (ix *Index) Intersect(other *Index) *Index {
	return build(lists.IntersectOrdered(ix.labels, other.labels))
}

// Drop removes every occurrence of the given labels. Absent labels are an error.
func (ix *Index) Drop(labels ...Label) (*Index, error) {
	normalized := make([]Label, len(labels))
	for i, l := range labels {
		if !ix.Contains(l) {
			return nil, Missing(l)
		}
		normalized[i] = normalize(l)
	}
	return build(lists.Difference(ix.labels, normalized)), nil
}

// Sorted returns the labels in ascending order: ints, then strings, then
// anything else by its text.
func (ix *Index) Sorted() *Index {
	out := slices.Clone(ix.labels)
	slices.SortStableFunc(out, compareLabels)
	return build(out)
}

// Take selects positions. Hierarchy is kept.
func (ix *Index) Take(positions []int) *Index {
	out := make([]Label, len(positions))
	for i, p := range positions {
		out[i] = ix.labels[p]
	}

	result := build(out)
	if ix.IsHierarchical() {
		result.levels = ix.levels
		result.names = ix.names
		result.codes = make([][]int, len(ix.codes))
		for lvl, codes := range ix.codes {
			taken := make([]int, len(positions))
			for i, p := range positions {
				taken[i] = codes[p]
			}
			result.codes[lvl] = taken
		}
	}
	return result
}

// Slice returns positions [start, end).
func (ix *Index) Slice(start, end int) *Index {
	if start < 0 || end > len(ix.labels) || start > end {
		panic(fmt.Sprintf("index slice [%d:%d] out of range for length %d", start, end, len(ix.labels)))
	}

	positions := make([]int, end-start)
	for i := range positions {
		positions[i] = start + i
	}
	return ix.Take(positions)
}

// Indexer maps every label of target to its position here, -1 when absent.
// This index must be unique.
func (ix *Index) Indexer(target *Index) ([]int, error) {
	if !ix.IsUnique() {
		return nil, Ambiguous(ix.Duplicated()[0])
	}

	out := make([]int, target.Len())
	for i, l := range target.labels {
		if positions, ok := ix.lookup[l]; ok {
			out[i] = positions[0]
		} else {
			out[i] = -1
		}
	}
	return out, nil
}

func (ix *Index) String() string {
	parts := make([]string, len(ix.labels))
	for i, l := range ix.labels {
		parts[i] = FormatLabel(l)
	}
	return "Index([" + strings.Join(parts, ", ") + "])"
}
