package collapse

import (
	"github.com/katalvlaran/isoformgraph/isograph"
)

// incompatPass removes every exon node fully contained in a same-
// strand intron implied elsewhere in the graph: the intron-containing
// path wins per spec §4.2's strand-incompatible-branches rule. Since a
// Node carries a single Strand, "the offending contribution is
// removed" and "the node is deleted" coincide — there is no second
// strand left for it to fall back to.
func incompatPass(g *isograph.Graph) bool {
	introns := impliedIntrons(g)
	if len(introns) == 0 {
		return false
	}

	changed := false
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n == nil || n.Synthetic || n.Type != isograph.Exon {
			continue
		}
		for _, in := range introns {
			if n.Strand != in.Strand {
				continue
			}
			if in.Start <= n.Exon.Start && n.Exon.End <= in.End {
				g.RemoveNode(id)
				changed = true
				break
			}
		}
	}
	return changed
}
