package pathfind

import "github.com/katalvlaran/isoformgraph/isograph"

// Path is one enumerated SOURCE->SINK path together with its scoring
// attributes (spec §4.4/§4.5). Nodes includes SOURCE and SINK at the
// ends; Length and Weight exclude their zero contribution.
type Path struct {
	Nodes   []isograph.NodeID
	Weight  float64
	Length  int
	Density float64

	// TSSID groups paths sharing the same first node after SOURCE,
	// assigned by Enumerate; zero until then.
	TSSID int
}

// toSinkState is dynamic-programming scratch held per node during
// BestPath, kept in its own table rather than on Node per spec §9's
// "dynamic attribute bags" design note.
type toSinkState struct {
	weight  float64
	length  int
	density float64
	next    isograph.NodeID
	hasNext bool
}

// BestPath computes the SOURCE->SINK path maximizing density by
// reverse-topological dynamic programming from sink back to source
// (spec §4.4): at each node it stores the best (density, weight,
// length, successor) reachable toward sink, then traces forward from
// source via the recorded successors.
func BestPath(g *isograph.Graph, source, sink isograph.NodeID) (Path, error) {
	order, err := topoOrder(g)
	if err != nil {
		return Path{}, err
	}

	states := make(map[isograph.NodeID]toSinkState, len(order))
	states[sink] = toSinkState{weight: g.Node(sink).Weight(), length: 0, density: -1}

	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		vState, ok := states[v]
		if !ok {
			// v has no path toward sink recorded yet (e.g. a dead end
			// with no successors that isn't sink itself); nothing to
			// propagate from it.
			continue
		}
		for _, p := range g.Predecessors(v) {
			pNode := g.Node(p)
			edge := g.Edge(p, v)

			length := vState.length + exonLength(pNode)
			weight := pNode.Weight()*edge.OutFrac + vState.weight*edge.InFrac
			density := densityOf(weight, length)

			cur, seen := states[p]
			if !seen || density > cur.density {
				states[p] = toSinkState{weight: weight, length: length, density: density, next: v, hasNext: true}
			}
		}
	}

	srcState, ok := states[source]
	if !ok {
		return Path{}, nil
	}

	nodes := []isograph.NodeID{source}
	cur := source
	for cur != sink {
		st := states[cur]
		if !st.hasNext {
			break
		}
		cur = st.next
		nodes = append(nodes, cur)
	}

	return Path{Nodes: nodes, Weight: srcState.weight, Length: srcState.length, Density: densityOf(srcState.weight, srcState.length)}, nil
}

// exonLength returns a node's own contribution to path length: its
// exon span for a real EXON node, 0 for SOURCE/SINK (which carry a
// zero-length placeholder interval).
func exonLength(n *isograph.Node) int {
	if n.Synthetic {
		return 0
	}
	return n.Exon.Len()
}

func densityOf(weight float64, length int) float64 {
	if length <= 0 {
		return 0
	}
	return weight / float64(length)
}
