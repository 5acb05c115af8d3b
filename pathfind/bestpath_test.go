package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// buildDiamond builds SOURCE -> {A, B} -> SINK where A carries a
// higher density than B, grounding scenario 6 of the best-path spec.
func buildDiamond(t *testing.T) (g *isograph.Graph, source, sink, a, b isograph.NodeID) {
	t.Helper()
	g = isograph.New()
	source = g.AddNode(isograph.Node{Synthetic: true, Strand: strand.Plus})
	sink = g.AddNode(isograph.Node{Synthetic: true, Strand: strand.Plus})
	a = g.AddNode(isograph.Node{Exon: ivl.Exon{Start: 100, End: 110}, Strand: strand.Plus})
	b = g.AddNode(isograph.Node{Exon: ivl.Exon{Start: 100, End: 110}, Strand: strand.Plus})
	g.Node(a).AddScore("A", 100)
	g.Node(b).AddScore("B", 40)

	g.AddEdge(source, a)
	g.AddEdge(source, b)
	g.AddEdge(a, sink)
	g.AddEdge(b, sink)
	g.RecomputeFractions()
	return
}

func TestBestPathPicksHigherDensity(t *testing.T) {
	g, source, sink, a, _ := buildDiamond(t)

	path, err := BestPath(g, source, sink)
	require.NoError(t, err)

	assert.Equal(t, []isograph.NodeID{source, a, sink}, path.Nodes)
	assert.InDelta(t, 10, path.Density, 1e-9)
}

func TestNumPathsCountsDiamond(t *testing.T) {
	g, source, sink, _, _ := buildDiamond(t)

	order, err := topoOrder(g)
	require.NoError(t, err)

	counts, overflowed := numPaths(g, order, sink)
	require.False(t, overflowed)
	assert.EqualValues(t, 2, counts[source])
}
