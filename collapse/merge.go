package collapse

import (
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// mergeNodes fuses u and w into one node spanning newExon with
// key-wise summed scores and the merged strand, redirects every
// incident edge (dropping the u<->w edge itself so no self-loop
// results), and removes the two originals. It implements the shared
// plumbing of R1 (newExon == both original, identical) and R2
// (newExon == union of two touching intervals).
func mergeNodes(g *isograph.Graph, u, w isograph.NodeID, newExon ivl.Exon) isograph.NodeID {
	un, wn := g.Node(u), g.Node(w)
	newStrand := strand.Merge(un.Strand, wn.Strand)

	preU, succU := g.Predecessors(u), g.Successors(u)
	preW, succW := g.Predecessors(w), g.Successors(w)

	m := g.AddNode(isograph.Node{Exon: newExon, Strand: newStrand, Type: isograph.Exon})
	mn := g.Node(m)
	for src, val := range un.Scores {
		mn.AddScore(src, val)
	}
	for src, val := range wn.Scores {
		mn.AddScore(src, val)
	}

	relink(g, preU, m, true, u, w)
	relink(g, preW, m, true, u, w)
	relink(g, succU, m, false, u, w)
	relink(g, succW, m, false, u, w)

	g.RemoveNode(u)
	g.RemoveNode(w)
	return m
}

// relink adds an edge between each id in ids and m (incoming if
// incoming is true, outgoing otherwise), skipping u and w themselves
// so the edge that used to connect the two merging nodes is dropped
// rather than becoming a self-loop on m.
func relink(g *isograph.Graph, ids []isograph.NodeID, m isograph.NodeID, incoming bool, u, w isograph.NodeID) {
	for _, id := range ids {
		if id == u || id == w {
			continue
		}
		if incoming {
			g.AddEdge(id, m)
		} else {
			g.AddEdge(m, id)
		}
	}
}
