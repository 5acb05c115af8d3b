package collapse

import (
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// Collapse iteratively applies intron-incompatibility pruning, R1-R4
// and, when cfg.Trim is set, overhang trimming, until no rule fires,
// per spec §4.2's fixed-point state machine. It returns the number of
// outer passes run; ErrDidNotConverge is returned once
// cfg.MaxIterations passes (DefaultMaxIterations when it is not
// positive) have run without reaching a fixed point, leaving g in its
// last consistent state.
func Collapse(g *isograph.Graph, cfg Config) (int, error) {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	iterations := 0
	for {
		if iterations >= maxIterations {
			return iterations, ErrDidNotConverge
		}
		iterations++

		changed := incompatPass(g)
		if applyOnePass(g) {
			changed = true
		}
		if cfg.Trim && trimPass(g, cfg.OverhangThreshold) {
			changed = true
		}

		if !changed {
			g.RecomputeFractions()
			return iterations, nil
		}
	}
}

// applyOnePass repeatedly finds the highest-priority applicable R1-R4
// candidate pair and applies it until none remain, then reports
// whether anything changed. Node ids retired by a merge/split cannot
// be revisited because findCandidate rebuilds its index from the
// graph's current node set on every call.
func applyOnePass(g *isograph.Graph) bool {
	any := false
	for {
		u, v, kind := findCandidate(g)
		if kind == ruleNone {
			return any
		}
		any = true
		switch kind {
		case ruleR1:
			applyR1(g, u, v)
		case ruleR2:
			applyR2(g, u, v)
		case ruleR3:
			applyR3(g, u, v)
		case ruleR4:
			none := u
			if g.Node(none).Strand != strand.None {
				none = v
			}
			applyR4(g, none, overlappingNeighbors(g, none))
		}
	}
}

// overlappingNeighbors returns every other non-synthetic exon node
// whose span overlaps or touches id's, for R4's weight tie-break
// (Open Question 1), which resolves against ALL of a NO_STRAND node's
// current neighbors rather than just the one candidate pair that
// triggered the classification.
func overlappingNeighbors(g *isograph.Graph, id isograph.NodeID) []isograph.NodeID {
	self := g.Node(id)
	idx := ivl.NewIndex()
	for _, other := range g.NodeIDs() {
		if other == id {
			continue
		}
		n := g.Node(other)
		if n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		idx.Insert(n.Exon, other)
	}
	idx.Adjust()

	var out []isograph.NodeID
	for _, hit := range idx.Overlapping(self.Exon) {
		out = append(out, hit.Payload.(isograph.NodeID))
	}
	return out
}

// findCandidate scans every overlapping/touching pair of non-synthetic
// exon nodes via an interval index and returns the first pair for
// which classify reports an applicable rule, in node-id order so the
// scan is deterministic.
func findCandidate(g *isograph.Graph) (isograph.NodeID, isograph.NodeID, ruleKind) {
	ids := g.NodeIDs()
	idx := ivl.NewIndex()
	for _, id := range ids {
		n := g.Node(id)
		if n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		idx.Insert(n.Exon, id)
	}
	idx.Adjust()

	for _, id := range ids {
		n := g.Node(id)
		if n == nil || n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		for _, hit := range idx.Overlapping(n.Exon) {
			other := hit.Payload.(isograph.NodeID)
			if other <= id {
				continue
			}
			if kind := classify(g, id, other); kind != ruleNone {
				return id, other, kind
			}
		}
	}
	return 0, 0, ruleNone
}
