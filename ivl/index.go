package ivl

import (
	"github.com/biogo/store/interval"
)

// Entry is one item stored in an Index: an Exon together with an
// opaque payload identifying the owning node.
type Entry struct {
	id      uintptr
	exon    Exon
	Payload interface{}
}

func (e *Entry) Overlap(b interval.IntRange) bool {
	return e.exon.Start < b.End && b.Start < e.exon.End
}
func (e *Entry) ID() uintptr { return e.id }
func (e *Entry) Range() interval.IntRange {
	return interval.IntRange{Start: e.exon.Start, End: e.exon.End}
}

// Index is an interval tree over Exons, used by the collapse engine to
// find R1-R4 candidate pairs in O(log n + k) instead of scanning every
// node pair on every pass.
type Index struct {
	tree   interval.IntTree
	nextID uintptr
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{}
}

// Insert adds exon with the given payload and returns the Entry, which
// callers may later hand back to Remove.
func (ix *Index) Insert(exon Exon, payload interface{}) *Entry {
	e := &Entry{id: ix.nextID, exon: exon, Payload: payload}
	ix.nextID++
	// IntTree.Insert never fails for well-formed ranges; fast=true defers
	// the tree's range-annotation update to Adjust, which the collapse
	// engine calls once per rebuild rather than after every insertion.
	_ = ix.tree.Insert(e, true)
	return e
}

// Adjust recomputes the tree's range annotations after a batch of
// Insert calls. Call it once a pass's candidate set has been fully
// populated.
func (ix *Index) Adjust() {
	ix.tree.AdjustRanges()
}

var _ interval.IntInterface = (*Entry)(nil)

// Overlapping returns every Entry whose exon overlaps or touches q,
// touching entries included by widening the query by one base on each
// side (the tree only reports true overlap; touch detection is
// finished by the caller via Exon.Touches).
func (ix *Index) Overlapping(q Exon) []*Entry {
	var out []*Entry
	widened := interval.IntRange{Start: q.Start - 1, End: q.End + 1}
	ix.tree.DoMatching(func(hit interval.IntInterface) bool {
		out = append(out, hit.(*Entry))
		return false
	}, widened)
	return out
}
