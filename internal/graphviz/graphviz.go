// Package graphviz renders an *isograph.Graph as Graphviz DOT, for
// debugging a locus's splice graph by eye. It adapts isograph's own
// NodeID/Edge representation onto gonum's graph.Directed interface and
// delegates rendering to gonum's dot encoder, the same pairing the
// example corpus's own DOT-exporting command uses for an unrelated
// graph shape.
package graphviz

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/isoformgraph/isograph"
)

// node adapts one isograph.Node onto graph.Node/dot.Node: its DOT id
// encodes the node's exon span and strand for an at-a-glance render.
type node struct {
	id     int64
	label  string
	weight float64
}

func (n node) ID() int64     { return n.id }
func (n node) DOTID() string { return n.label }

func (n node) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "weight", Value: fmt.Sprintf("%.3f", n.weight)},
	}
}

// Marshal renders g as a DOT digraph named name, indented with
// indent. Edges carry the graph's OutFrac as a label.
func Marshal(g *isograph.Graph, name, indent string) ([]byte, error) {
	dg := simple.NewDirectedGraph()

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		label := fmt.Sprintf("%s:%d-%d", n.Strand, n.Exon.Start, n.Exon.End)
		if n.Synthetic {
			label = fmt.Sprintf("%s(synthetic)", n.Strand)
		}
		dg.AddNode(node{id: int64(id), label: label, weight: n.Weight()})
	}

	for _, id := range g.NodeIDs() {
		for _, e := range g.OutEdges(id) {
			dg.SetEdge(weightedEdge{
				f: dg.Node(int64(e.From)),
				t: dg.Node(int64(e.To)),
				w: e.OutFrac,
			})
		}
	}

	return dot.Marshal(dg, name, "", indent)
}

type weightedEdge struct {
	f, t graph.Node
	w    float64
}

func (e weightedEdge) From() graph.Node         { return e.f }
func (e weightedEdge) To() graph.Node           { return e.t }
func (e weightedEdge) ReversedEdge() graph.Edge { return weightedEdge{f: e.t, t: e.f, w: e.w} }

func (e weightedEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: fmt.Sprintf("%.2f", e.w)},
	}
}
