package isograph

// AddEdge creates a directed edge u->v if one does not already exist,
// and returns its id. Adding an edge that already exists is a no-op
// that returns the existing id, so builder and collapse code can call
// AddEdge freely without tracking what they have already linked.
func (g *Graph) AddEdge(from, to NodeID) EdgeID {
	if eid, ok := g.out[from][to]; ok {
		return eid
	}
	id := g.nextEdge
	g.nextEdge++
	e := &Edge{ID: id, From: from, To: to}
	g.edges[id] = e
	g.out[from][to] = id
	g.in[to][from] = id
	return id
}

// RemoveEdge deletes the edge from->to, if any.
func (g *Graph) RemoveEdge(from, to NodeID) {
	eid, ok := g.out[from][to]
	if !ok {
		return
	}
	delete(g.edges, eid)
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// HasEdge reports whether a from->to edge exists.
func (g *Graph) HasEdge(from, to NodeID) bool {
	_, ok := g.out[from][to]
	return ok
}

// Edge returns the edge from->to, or nil.
func (g *Graph) Edge(from, to NodeID) *Edge {
	eid, ok := g.out[from][to]
	if !ok {
		return nil
	}
	return g.edges[eid]
}

// OutEdges returns the outgoing edges of id, ordered by destination
// NodeID.
func (g *Graph) OutEdges(id NodeID) []*Edge {
	tos := sortedKeys(g.out[id])
	out := make([]*Edge, len(tos))
	for i, to := range tos {
		out[i] = g.edges[g.out[id][to]]
	}
	return out
}

// InEdges returns the incoming edges of id, ordered by source NodeID.
func (g *Graph) InEdges(id NodeID) []*Edge {
	froms := sortedKeys(g.in[id])
	out := make([]*Edge, len(froms))
	for i, from := range froms {
		out[i] = g.edges[g.in[id][from]]
	}
	return out
}

// RecomputeFractions implements invariant I4: for every edge u->v,
//
//	out_frac(u->v) = weight(v) / sum(weight(w) for w in succ(u))
//	in_frac(u->v)  = weight(u) / sum(weight(w) for w in pred(v))
//
// A node with no successors (or no predecessors) contributes no
// fractions on that side; its own out_frac/in_frac sum is vacuously
// satisfied.
func (g *Graph) RecomputeFractions() {
	weight := make(map[NodeID]float64, len(g.nodes))
	for id, n := range g.nodes {
		weight[id] = n.Weight()
	}

	for from, succs := range g.out {
		var total float64
		for to := range succs {
			total += weight[to]
		}
		for to, eid := range succs {
			g.edges[eid].OutFrac = fraction(weight[to], total, len(succs))
		}
	}

	for to, preds := range g.in {
		var total float64
		for from := range preds {
			total += weight[from]
		}
		for from, eid := range preds {
			g.edges[eid].InFrac = fraction(weight[from], total, len(preds))
		}
	}
}

// fraction computes share/total, falling back to a uniform 1/n split
// when total is zero (all competing nodes currently carry zero
// weight) so that I4's per-node fraction sum still holds to 1 instead
// of collapsing to 0 for every edge.
func fraction(share, total float64, n int) float64 {
	if total > 0 {
		return share / total
	}
	if n == 0 {
		return 0
	}
	return 1 / float64(n)
}
