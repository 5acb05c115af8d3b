package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

func TestSplitStrandedChain(t *testing.T) {
	g := isograph.New()
	a := g.AddNode(isograph.Node{Exon: ivl.Exon{Start: 100, End: 200}, Strand: strand.Plus, Type: isograph.Exon})
	b := g.AddNode(isograph.Node{Exon: ivl.Exon{Start: 300, End: 400}, Strand: strand.Plus, Type: isograph.Exon})
	g.Node(a).AddScore("A", 1)
	g.Node(b).AddScore("A", 1)
	g.AddEdge(a, b)
	g.RecomputeFractions()

	result := Split(g)

	require.Equal(t, 4, result.Plus.Graph.Len()) // a, b, SOURCE, SINK
	assert.True(t, result.Plus.Graph.HasSuccessor(result.Plus.Source))
	assert.True(t, result.Plus.Graph.HasPredecessor(result.Plus.Sink))
	assert.False(t, result.Plus.Graph.HasPredecessor(result.Plus.Source))
	assert.False(t, result.Plus.Graph.HasSuccessor(result.Plus.Sink))

	// nothing landed on MINUS
	assert.Equal(t, 2, result.Minus.Graph.Len()) // only SOURCE, SINK
	assert.True(t, result.Minus.Graph.HasEdge(result.Minus.Source, result.Minus.Sink))
}

func TestSplitDuplicatesStrandless(t *testing.T) {
	g := isograph.New()
	n := g.AddNode(isograph.Node{Exon: ivl.Exon{Start: 100, End: 200}, Strand: strand.None, Type: isograph.Exon})
	g.Node(n).AddScore("C", 1)
	g.RecomputeFractions()

	result := Split(g)

	assert.Equal(t, 3, result.Plus.Graph.Len())
	assert.Equal(t, 3, result.Minus.Graph.Len())

	for _, sub := range []*isograph.Graph{result.Plus.Graph, result.Minus.Graph} {
		for _, id := range sub.NodeIDs() {
			node := sub.Node(id)
			if !node.Synthetic {
				assert.InDelta(t, 1, node.Scores["C"], 1e-9)
			}
		}
	}
}
