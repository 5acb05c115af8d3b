// Package refine implements the transcript-graph refiner of spec §4.3:
// it splits a collapsed IsoformGraph into per-strand TranscriptGraphs
// and inserts the synthetic SOURCE/SINK nodes the path finder walks.
package refine

import (
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// Subgraph is one strand's TranscriptGraph together with the ids of
// the synthetic SOURCE and SINK nodes Split added to it, so callers
// (the path finder) never need to rediscover them by scanning.
type Subgraph struct {
	Graph  *isograph.Graph
	Source isograph.NodeID
	Sink   isograph.NodeID
}

// Result holds the two per-strand TranscriptGraphs produced by Split.
// A gene with no transcripts on one strand still gets a graph for it,
// containing only SOURCE directly wired to SINK.
type Result struct {
	Plus  Subgraph
	Minus Subgraph
}

// Split partitions a collapsed IsoformGraph into PLUS and MINUS
// TranscriptGraphs. Stranded nodes go to their own subgraph; NO_STRAND
// nodes are duplicated into both with their score mapping intact
// (weight is not split — the caller interprets duplicated
// attribution). Each subgraph gets a synthetic SOURCE wired to every
// node with no predecessor and a synthetic SINK wired from every node
// with no successor, then has its fractions recomputed.
func Split(g *isograph.Graph) Result {
	return Result{
		Plus:  buildSubgraph(g, strand.Plus),
		Minus: buildSubgraph(g, strand.Minus),
	}
}

func buildSubgraph(g *isograph.Graph, want strand.Strand) Subgraph {
	sub := isograph.New()
	mapped := make(map[isograph.NodeID]isograph.NodeID)

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Synthetic {
			continue
		}
		if n.Strand != want && n.Strand != strand.None {
			continue
		}
		newID := sub.AddNode(isograph.Node{Exon: n.Exon, Strand: want, Type: n.Type})
		newNode := sub.Node(newID)
		for src, val := range n.Scores {
			newNode.AddScore(src, val)
		}
		mapped[id] = newID
	}

	for _, id := range g.NodeIDs() {
		newFrom, ok := mapped[id]
		if !ok {
			continue
		}
		for _, e := range g.OutEdges(id) {
			newTo, ok := mapped[e.To]
			if !ok {
				continue
			}
			sub.AddEdge(newFrom, newTo)
		}
	}

	source := sub.AddNode(isograph.Node{Exon: ivl.Exon{}, Strand: want, Type: isograph.Exon, Synthetic: true})
	sink := sub.AddNode(isograph.Node{Exon: ivl.Exon{}, Strand: want, Type: isograph.Exon, Synthetic: true})

	if len(mapped) == 0 {
		sub.AddEdge(source, sink)
	}

	for _, id := range sub.NodeIDs() {
		if id == source || id == sink {
			continue
		}
		if !sub.HasPredecessor(id) {
			sub.AddEdge(source, id)
		}
		if !sub.HasSuccessor(id) {
			sub.AddEdge(id, sink)
		}
	}

	sub.RecomputeFractions()
	return Subgraph{Graph: sub, Source: source, Sink: sink}
}
