package collapse

import (
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// intron is a gap implied by a direct edge between two non-synthetic
// exon nodes whose spans do not touch.
type intron struct {
	ivl.Exon
	Strand strand.Strand
}

// impliedIntrons scans every edge for a genomic gap between its two
// endpoints, in genomic order regardless of edge direction (MINUS
// edges run opposite to genomic order per the builder's convention).
func impliedIntrons(g *isograph.Graph) []intron {
	var out []intron
	seen := make(map[ivl.Exon]bool)
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		for _, succID := range g.Successors(id) {
			s := g.Node(succID)
			if s.Synthetic || s.Type != isograph.Exon {
				continue
			}
			lo, hi := n, s
			if hi.Exon.Start < lo.Exon.Start {
				lo, hi = hi, lo
			}
			if lo.Exon.End < hi.Exon.Start {
				gap := ivl.Exon{Start: lo.Exon.End, End: hi.Exon.Start}
				if !seen[gap] {
					seen[gap] = true
					out = append(out, intron{Exon: gap, Strand: strand.Merge(n.Strand, s.Strand)})
				}
			}
		}
	}
	return out
}

// trimPass applies overhang trimming once to every terminal exon
// node, per spec §4.2. It returns whether any node was mutated or
// removed, so the caller's fixed-point loop knows to re-run R1-R4.
func trimPass(g *isograph.Graph, overhangThreshold int) bool {
	introns := impliedIntrons(g)
	if len(introns) == 0 {
		return false
	}

	changed := false
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n == nil || n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		noPred := !g.HasPredecessor(id)
		noSucc := !g.HasSuccessor(id)
		if !noPred && !noSucc {
			continue
		}

		for _, in := range introns {
			if !strand.Compatible(n.Strand, in.Strand) {
				continue
			}
			if noSucc && in.Start >= n.Exon.Start && in.Start < n.Exon.End {
				depth := n.Exon.End - in.Start
				if depth > 0 && depth <= overhangThreshold {
					changed = true
					truncateEnd(g, id, in.Start)
					break
				}
			}
			if noPred && in.End > n.Exon.Start && in.End <= n.Exon.End {
				depth := in.End - n.Exon.Start
				if depth > 0 && depth <= overhangThreshold {
					changed = true
					truncateStart(g, id, in.End)
					break
				}
			}
		}
	}
	return changed
}

// truncateEnd shortens n's exon to [start,newEnd), prorating its
// scores to the surviving fraction, or deletes n outright if that
// collapses the span to zero length.
func truncateEnd(g *isograph.Graph, id isograph.NodeID, newEnd int) {
	n := g.Node(id)
	oldLen := n.Exon.Len()
	newLen := newEnd - n.Exon.Start
	if newLen <= 0 {
		g.RemoveNode(id)
		return
	}
	prorate(n, newLen, oldLen)
	n.Exon.End = newEnd
}

// truncateStart shortens n's exon to [newStart,End), prorating scores,
// or deletes n if that collapses the span to zero length.
func truncateStart(g *isograph.Graph, id isograph.NodeID, newStart int) {
	n := g.Node(id)
	oldLen := n.Exon.Len()
	newLen := n.Exon.End - newStart
	if newLen <= 0 {
		g.RemoveNode(id)
		return
	}
	prorate(n, newLen, oldLen)
	n.Exon.Start = newStart
}

func prorate(n *isograph.Node, newLen, oldLen int) {
	if newLen == oldLen {
		return
	}
	frac := float64(newLen) / float64(oldLen)
	for src, val := range n.Scores {
		n.Scores[src] = val * frac
	}
}
