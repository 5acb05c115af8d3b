package isograph

import (
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/locus"
	"github.com/katalvlaran/isoformgraph/strand"
)

// nodeKey identifies a node during construction, before collapse has
// had a chance to unify overlapping/touching nodes. It is a transient
// builder artifact (spec §9) and is never stored on Node.
type nodeKey struct {
	exon   ivl.Exon
	strand strand.Strand
}

// Build runs the splice-graph-builder algorithm of spec §4.1 over the
// transcripts of one locus batch and returns the resulting Graph.
//
//  1. Collect every distinct exon boundary across transcripts.
//  2. Split each input exon into the subintervals it covers; fetch or
//     create a node per (subinterval, strand); accumulate score.
//  3. Link consecutive exons/subfragments along each transcript,
//     walking in descending order for MINUS-strand transcripts.
//  4. Link consecutive subintervals of the same original exon.
//  5. Recompute in/out fractions.
func Build(batch locus.Batch) (*Graph, error) {
	for _, t := range batch.Transcripts {
		if err := t.Validate(); err != nil {
			if err == locus.ErrEmptyTranscript {
				return nil, ErrEmptyTranscript
			}
			return nil, ErrInvalidInterval
		}
	}

	var allExons []ivl.Exon
	for _, t := range batch.Transcripts {
		allExons = append(allExons, t.Exons...)
	}
	bounds := ivl.Boundaries(allExons...)

	g := New()
	index := make(map[nodeKey]NodeID)

	fetch := func(e ivl.Exon, s strand.Strand) NodeID {
		k := nodeKey{e, s}
		if id, ok := index[k]; ok {
			return id
		}
		id := g.AddNode(Node{Exon: e, Strand: s, Type: Exon})
		index[k] = id
		return id
	}

	for _, t := range batch.Transcripts {
		// subfragments[i] holds the ordered subintervals of t.Exons[i],
		// always in ascending genomic order regardless of strand; the
		// MINUS-strand transcript-direction edges are added by walking
		// fragment chains in descending order below (spec §9: represent
		// MINUS order as descending coordinates rather than reversing
		// the graph).
		subfragments := make([][]NodeID, len(t.Exons))
		for i, e := range t.Exons {
			pieces := ivl.Split(e, bounds)
			ids := make([]NodeID, len(pieces))
			for j, p := range pieces {
				id := fetch(p, t.Strand)
				g.Node(id).AddScore(t.Label, t.Score*float64(p.Len())/float64(e.Len()))
				ids[j] = id
			}
			subfragments[i] = ids

			// step 4: internal adjacency between subintervals of the
			// same exon. Direction follows the strand's transcript
			// direction (I3), matching step 3's MINUS-strand handling.
			for j := 0; j+1 < len(ids); j++ {
				if t.Strand == strand.Minus {
					g.AddEdge(ids[j+1], ids[j])
				} else {
					g.AddEdge(ids[j], ids[j+1])
				}
			}
		}

		// step 3: consecutive-exon adjacency along the transcript.
		for i := 0; i+1 < len(subfragments); i++ {
			last := subfragments[i][len(subfragments[i])-1]
			first := subfragments[i+1][0]
			if t.Strand == strand.Minus {
				g.AddEdge(first, last)
			} else {
				g.AddEdge(last, first)
			}
		}
	}

	g.RecomputeFractions()
	return g, nil
}
