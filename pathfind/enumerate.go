package pathfind

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/isoformgraph/isograph"
)

// Option customizes a Config.
type Option func(*Config)

// Config resolves the suboptimal-enumeration tunables of spec §4.5.
type Config struct {
	FractionMajorIsoform float64
	MaxPaths             int
	MaxExhaustive        int
}

// DefaultMaxExhaustive is the N-below-which enumeration is exhaustive
// rather than sampled; a policy, not an invariant (spec §9).
const DefaultMaxExhaustive = 1000

// NewConfig resolves a Config from the two caller-facing parameters
// plus any tuning opts.
func NewConfig(fractionMajorIsoform float64, maxPaths int, opts ...Option) Config {
	cfg := Config{
		FractionMajorIsoform: fractionMajorIsoform,
		MaxPaths:             maxPaths,
		MaxExhaustive:        DefaultMaxExhaustive,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxExhaustive overrides DefaultMaxExhaustive.
func WithMaxExhaustive(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxExhaustive = n
		}
	}
}

// Result is the outcome of Enumerate: the surviving, sorted,
// TSS-grouped paths, and whether the exact path count overflowed
// int64 and forced the sampled fallback (isograph.ErrPathFindingOverflow's
// condition, reported in this field rather than as an error).
type Result struct {
	Paths      []Path
	Overflowed bool
}

// Enumerate runs spec §4.5's suboptimal-isoform search over one
// TranscriptGraph's connected component: exhaustive depth-first
// enumeration when the component is small enough, otherwise the best
// path plus MaxPaths-1 additional weighted-random-walk samples.
// Surviving paths (density >= FractionMajorIsoform * best density) are
// returned sorted by density descending, ties broken by length
// descending then by lexicographic exon-coordinate order, capped at
// MaxPaths, with a TSSID assigned per distinct first-node-after-source.
func Enumerate(g *isograph.Graph, source, sink isograph.NodeID, cfg Config, rng *rand.Rand) (Result, error) {
	order, err := topoOrder(g)
	if err != nil {
		return Result{}, err
	}

	counts, overflowed := numPaths(g, order, sink)

	best, err := BestPath(g, source, sink)
	if err != nil {
		return Result{}, err
	}

	var raw []Path
	n := counts[source]
	if !overflowed && n > 0 && n <= int64(cfg.MaxExhaustive) {
		raw = exhaustive(g, source, sink)
	} else {
		raw = append(raw, best)
		seen := map[string]bool{pathKey(best): true}
		samples := cfg.MaxPaths - 1
		for i := 0; i < samples; i++ {
			p := sampleWalk(g, source, sink, counts, rng)
			key := pathKey(p)
			if seen[key] {
				continue
			}
			seen[key] = true
			raw = append(raw, p)
		}
	}

	threshold := cfg.FractionMajorIsoform * best.Density
	surviving := raw[:0]
	for _, p := range raw {
		if p.Density >= threshold {
			surviving = append(surviving, p)
		}
	}

	sort.SliceStable(surviving, func(i, j int) bool {
		a, b := surviving[i], surviving[j]
		if a.Density != b.Density {
			return a.Density > b.Density
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return lessLexicographic(g, a.Nodes, b.Nodes)
	})

	if len(surviving) > cfg.MaxPaths {
		surviving = surviving[:cfg.MaxPaths]
	}

	assignTSS(surviving)

	return Result{Paths: surviving, Overflowed: overflowed}, nil
}

// exhaustive enumerates every SOURCE->SINK path via depth-first
// traversal, accumulating weight/length forward along each path's own
// edges (spec §4.4's forward recurrence restricted to a single path,
// not the cross-predecessor maximum the best-path DP takes).
func exhaustive(g *isograph.Graph, source, sink isograph.NodeID) []Path {
	type frame struct {
		nodes  []isograph.NodeID
		weight float64
		length int
		node   isograph.NodeID
	}

	var out []Path
	stack := []frame{{node: source}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path := make([]isograph.NodeID, len(f.nodes), len(f.nodes)+1)
		copy(path, f.nodes)
		path = append(path, f.node)

		if f.node == sink {
			out = append(out, Path{Nodes: path, Weight: f.weight, Length: f.length, Density: densityOf(f.weight, f.length)})
			continue
		}
		for _, child := range g.Successors(f.node) {
			cNode := g.Node(child)
			edge := g.Edge(f.node, child)
			weight := f.weight*edge.OutFrac + cNode.Weight()*edge.InFrac
			length := f.length + exonLength(cNode)
			stack = append(stack, frame{nodes: path, weight: weight, length: length, node: child})
		}
	}
	return out
}

// sampleWalk draws one SOURCE->SINK path by choosing, at each node, a
// successor with probability proportional to its paths-to-sink count
// — a distribution uniform over all distinct paths regardless of
// branch fan-out (spec §4.5).
func sampleWalk(g *isograph.Graph, source, sink isograph.NodeID, counts map[isograph.NodeID]int64, rng *rand.Rand) Path {
	nodes := []isograph.NodeID{source}
	var weight float64
	var length int
	cur := source
	for cur != sink {
		succs := g.Successors(cur)
		var total int64
		for _, s := range succs {
			total += counts[s]
		}
		r := rng.Int63n(total)
		var running int64
		chosen := succs[len(succs)-1]
		for _, s := range succs {
			running += counts[s]
			if r < running {
				chosen = s
				break
			}
		}
		cNode := g.Node(chosen)
		edge := g.Edge(cur, chosen)
		weight = weight*edge.OutFrac + cNode.Weight()*edge.InFrac
		length += exonLength(cNode)
		cur = chosen
		nodes = append(nodes, cur)
	}
	return Path{Nodes: nodes, Weight: weight, Length: length, Density: densityOf(weight, length)}
}

func pathKey(p Path) string {
	b := make([]byte, 0, len(p.Nodes)*5)
	for _, id := range p.Nodes {
		b = append(b, byte(id), byte(id>>8), byte(id>>16), byte(id>>24), '|')
	}
	return string(b)
}

// assignTSS groups paths by their first node after SOURCE, assigning
// each distinct group a monotonically increasing id in the order the
// group is first seen (paths are already sorted by density, so TSSID
// 1 is the major isoform's transcription start site).
func assignTSS(paths []Path) {
	next := 1
	seen := make(map[isograph.NodeID]int)
	for i := range paths {
		if len(paths[i].Nodes) < 2 {
			continue
		}
		first := paths[i].Nodes[1]
		id, ok := seen[first]
		if !ok {
			id = next
			seen[first] = id
			next++
		}
		paths[i].TSSID = id
	}
}

func lessLexicographic(g *isograph.Graph, a, b []isograph.NodeID) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		an, bn := g.Node(a[i]).Exon, g.Node(b[i]).Exon
		if an.Start != bn.Start {
			return an.Start < bn.Start
		}
		if an.End != bn.End {
			return an.End < bn.End
		}
	}
	return len(a) < len(b)
}
