package collapse

import (
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// ruleKind identifies which of R1-R4 a candidate pair classifies as.
type ruleKind int8

const (
	ruleNone ruleKind = iota
	ruleR1
	ruleR2
	ruleR3
	ruleR4
)

// classify inspects an unordered candidate pair (a,b) and reports the
// rule that applies: R4 for a NO_STRAND/stranded pair, otherwise the
// first of R1 > R2 > R3 that applies.
func classify(g *isograph.Graph, a, b isograph.NodeID) ruleKind {
	an, bn := g.Node(a), g.Node(b)
	if an == nil || bn == nil || an.Synthetic || bn.Synthetic {
		return ruleNone
	}

	// A pair of one NO_STRAND and one stranded node is checked first
	// and classified as R4 whenever the two overlap or touch, so the
	// strandless node adopts a strand before R1-R3 ever see it.
	// applyOnePass re-classifies after R4 fires, so the now-stranded
	// node is then merged by R1/R3 ("R4 unblocks R1/R3" in spec §4.2).
	if an.Strand == strand.None && bn.Strand != strand.None {
		if an.Exon.Overlaps(bn.Exon) || an.Exon.Touches(bn.Exon) {
			return ruleR4
		}
		return ruleNone
	}
	if bn.Strand == strand.None && an.Strand != strand.None {
		if an.Exon.Overlaps(bn.Exon) || an.Exon.Touches(bn.Exon) {
			return ruleR4
		}
		return ruleNone
	}
	if !strand.Compatible(an.Strand, bn.Strand) {
		return ruleNone
	}

	if an.Exon.Equal(bn.Exon) {
		return ruleR1
	}
	if an.Exon.Touches(bn.Exon) {
		if isTouchingColinear(g, a, b) || isTouchingColinear(g, b, a) {
			return ruleR2
		}
		return ruleNone
	}
	if an.Exon.Overlaps(bn.Exon) {
		return ruleR3
	}
	return ruleNone
}

// isTouchingColinear reports whether u->v is a direct edge with u's
// only successor being v and v's only predecessor being u, the R2
// precondition.
func isTouchingColinear(g *isograph.Graph, u, v isograph.NodeID) bool {
	if !g.HasEdge(u, v) {
		return false
	}
	succ := g.Successors(u)
	pred := g.Predecessors(v)
	return len(succ) == 1 && succ[0] == v && len(pred) == 1 && pred[0] == u
}

// applyR1 merges two identical-interval nodes.
func applyR1(g *isograph.Graph, a, b isograph.NodeID) {
	mergeNodes(g, a, b, g.Node(a).Exon)
}

// applyR2 merges two touching colinear nodes into their union span.
func applyR2(g *isograph.Graph, a, b isograph.NodeID) {
	an, bn := g.Node(a).Exon, g.Node(b).Exon
	mergeNodes(g, a, b, ivl.Exon{Start: min(an.Start, bn.Start), End: max(an.End, bn.End)})
}

// applyR3 splits two overlapping-but-not-identical nodes at their
// shared boundary into up to three pieces (left-only, shared,
// right-only), prorating each original node's scores by the length
// fraction of the piece it contributes to. The shared piece is built
// once from both originals' prorated scores, which is the R1 merge of
// their two identical shared halves.
func applyR3(g *isograph.Graph, a, b isograph.NodeID) {
	an, bn := g.Node(a), g.Node(b)
	ae, be := an.Exon, bn.Exon

	sharedStart := max(ae.Start, be.Start)
	sharedEnd := min(ae.End, be.End)

	newStrand := strand.Merge(an.Strand, bn.Strand)

	preA, succA := g.Predecessors(a), g.Successors(a)
	preB, succB := g.Predecessors(b), g.Successors(b)

	// leftmost/rightmost piece derived from each original, used to
	// redirect predecessors/successors per spec's "leftmost piece /
	// appropriate chain" wording. The ok flags distinguish "no such
	// piece" from NodeID 0, which is itself a valid id.
	var aLeft, aRight, bLeft, bRight isograph.NodeID
	var haveALeft, haveARight, haveBLeft, haveBRight bool
	var chain []isograph.NodeID

	makePiece := func(span ivl.Exon, contributors ...*isograph.Node) isograph.NodeID {
		id := g.AddNode(isograph.Node{Exon: span, Strand: newStrand, Type: isograph.Exon})
		n := g.Node(id)
		for _, c := range contributors {
			frac := float64(span.Len()) / float64(c.Exon.Len())
			for src, val := range c.Scores {
				n.AddScore(src, val*frac)
			}
		}
		return id
	}

	if ae.Start != be.Start {
		if ae.Start < be.Start {
			aLeft = makePiece(ivl.Exon{Start: ae.Start, End: sharedStart}, an)
			haveALeft = true
			chain = append(chain, aLeft)
		} else {
			bLeft = makePiece(ivl.Exon{Start: be.Start, End: sharedStart}, bn)
			haveBLeft = true
			chain = append(chain, bLeft)
		}
	}

	shared := makePiece(ivl.Exon{Start: sharedStart, End: sharedEnd}, an, bn)
	chain = append(chain, shared)

	if ae.End != be.End {
		if ae.End > be.End {
			aRight = makePiece(ivl.Exon{Start: sharedEnd, End: ae.End}, an)
			haveARight = true
			chain = append(chain, aRight)
		} else {
			bRight = makePiece(ivl.Exon{Start: sharedEnd, End: be.End}, bn)
			haveBRight = true
			chain = append(chain, bRight)
		}
	}

	// chain the new pieces together in genomic order.
	for i := 0; i+1 < len(chain); i++ {
		g.AddEdge(chain[i], chain[i+1])
	}

	aLeftmost := pick(aLeft, haveALeft, shared)
	aRightmost := pick(aRight, haveARight, shared)
	bLeftmost := pick(bLeft, haveBLeft, shared)
	bRightmost := pick(bRight, haveBRight, shared)

	for _, p := range preA {
		if p != a && p != b {
			g.AddEdge(p, aLeftmost)
		}
	}
	for _, p := range preB {
		if p != a && p != b {
			g.AddEdge(p, bLeftmost)
		}
	}
	for _, s := range succA {
		if s != a && s != b {
			g.AddEdge(aRightmost, s)
		}
	}
	for _, s := range succB {
		if s != a && s != b {
			g.AddEdge(bRightmost, s)
		}
	}

	g.RemoveNode(a)
	g.RemoveNode(b)
}

func pick(preferred isograph.NodeID, ok bool, fallback isograph.NodeID) isograph.NodeID {
	if ok {
		return preferred
	}
	return fallback
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resolveStrandlessConflict decides which strand a NO_STRAND node
// should adopt given its current overlapping/touching stranded
// neighbors: the strand with the greater summed neighbor weight wins;
// PLUS wins a tie (Open Question 1 — the spec leaves the tie-break
// unspecified, so this is the documented resolution).
func resolveStrandlessConflict(g *isograph.Graph, neighbors []isograph.NodeID) strand.Strand {
	var plusWeight, minusWeight float64
	for _, id := range neighbors {
		n := g.Node(id)
		if n == nil {
			continue
		}
		switch n.Strand {
		case strand.Plus:
			plusWeight += n.Weight()
		case strand.Minus:
			minusWeight += n.Weight()
		}
	}
	if minusWeight > plusWeight {
		return strand.Minus
	}
	return strand.Plus
}

// applyR4 resolves noneID's strand against its current stranded
// neighbors and reassigns it; a later pass then sees noneID as
// ordinarily stranded and lets R1-R3 merge it normally.
func applyR4(g *isograph.Graph, noneID isograph.NodeID, neighbors []isograph.NodeID) {
	g.Node(noneID).Strand = resolveStrandlessConflict(g, neighbors)
}
