package pathfind

import (
	"errors"

	"github.com/katalvlaran/isoformgraph/isograph"
)

// ErrCycleDetected is returned by topoOrder if g is not acyclic;
// IsoformGraph's invariant I3 means this should never trigger on a
// graph this package actually receives, but the DFS still checks
// rather than trusting the caller.
var ErrCycleDetected = errors.New("pathfind: cycle detected in TranscriptGraph")

const (
	white = 0
	gray  = 1
	black = 2
)

// topoOrder returns every node of g in topological order (source-like
// roots first), via the White/Gray/Black DFS convention used
// throughout this module's graph algorithms.
func topoOrder(g *isograph.Graph) ([]isograph.NodeID, error) {
	state := make(map[isograph.NodeID]int, g.Len())
	order := make([]isograph.NodeID, 0, g.Len())

	var visit func(id isograph.NodeID) error
	visit = func(id isograph.NodeID) error {
		switch state[id] {
		case gray:
			return ErrCycleDetected
		case black:
			return nil
		}
		state[id] = gray
		for _, succ := range g.Successors(id) {
			if err := visit(succ); err != nil {
				return err
			}
		}
		state[id] = black
		order = append(order, id)
		return nil
	}

	for _, id := range g.NodeIDs() {
		if state[id] == white {
			if err := visit(id); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
