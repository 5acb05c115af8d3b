package pathfind

import "github.com/katalvlaran/isoformgraph/isograph"

// numPaths computes, for every node reachable toward sink, the number
// of distinct SOURCE-independent sink paths starting at that node:
// paths(sink) = 1, paths(v) = Σ paths(succ) over v's successors (spec
// §4.5). It reports overflow rather than panicking or silently
// wrapping, per isograph.ErrPathFindingOverflow — callers that see
// overflowed=true must not trust counts[source] and should fall back
// unconditionally to best-path-plus-sampling.
func numPaths(g *isograph.Graph, order []isograph.NodeID, sink isograph.NodeID) (counts map[isograph.NodeID]int64, overflowed bool) {
	counts = make(map[isograph.NodeID]int64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if v == sink {
			counts[v] = 1
			continue
		}
		var total int64
		for _, succ := range g.Successors(v) {
			c, ok := counts[succ]
			if !ok {
				continue
			}
			sum := total + c
			if sum < total { // int64 overflow
				overflowed = true
				sum = maxInt64
			}
			total = sum
		}
		counts[v] = total
	}
	return counts, overflowed
}

const maxInt64 = 1<<63 - 1
