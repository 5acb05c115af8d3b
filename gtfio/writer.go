package gtfio

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// Isoform is one assembled transcript ready for BED12 emission (spec
// §6): a gene/TSS/transcript triple of ids, its strand and density
// score, and its exon blocks in ascending genomic order.
type Isoform struct {
	Chrom   string
	GeneID  string
	TSSID   int
	TxID    string
	Strand  strand.Strand
	Density float64
	Exons   []ivl.Exon
}

// WriteBED emits one BED12 line per Isoform. Touching exons are fused
// into a single block first (the same adjacency rule R2 uses to merge
// colinear nodes), since a path through the splice graph may visit
// several collapsed nodes that are contiguous but were never re-merged
// into one node. Blocks are always listed in ascending genomic order,
// as BED12 requires, on both strands. The feature name is
// GeneID|tss<TSSID>|TxID; it carries no per-exon suffix.
func WriteBED(w io.Writer, isoforms []Isoform) error {
	bw := bufio.NewWriter(w)
	for _, iso := range isoforms {
		if err := writeOne(bw, iso); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeOne(w *bufio.Writer, iso Isoform) error {
	if len(iso.Exons) == 0 {
		return nil
	}
	blocks := fuseTouching(iso.Exons)

	chromStart := blocks[0].Start
	chromEnd := blocks[len(blocks)-1].End
	name := fmt.Sprintf("%s|tss%d|%s", iso.GeneID, iso.TSSID, iso.TxID)

	blockSizes := make([]int, len(blocks))
	blockStarts := make([]int, len(blocks))
	for i, b := range blocks {
		blockSizes[i] = b.Len()
		blockStarts[i] = b.Start - chromStart
	}

	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\t%d\t%d\t0\t%d\t%s\t%s\n",
		iso.Chrom, chromStart, chromEnd, name, score(iso.Density), iso.Strand,
		chromStart, chromEnd, len(blocks),
		joinInts(blockSizes), joinInts(blockStarts))
	return err
}

// fuseTouching merges adjacent exons with no gap between them,
// mirroring collapse's R2 colinear-merge rule applied to a flat exon
// list rather than to graph nodes.
func fuseTouching(exons []ivl.Exon) []ivl.Exon {
	sorted := append([]ivl.Exon(nil), exons...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := sorted[:1]
	for _, e := range sorted[1:] {
		last := &out[len(out)-1]
		if e.Start <= last.End {
			if e.End > last.End {
				last.End = e.End
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// score clamps a density value onto BED's required [0,1000] integer
// score column.
func score(density float64) int {
	s := int(density)
	if s < 0 {
		return 0
	}
	if s > 1000 {
		return 1000
	}
	return s
}

func joinInts(vals []int) string {
	out := make([]byte, 0, len(vals)*4)
	for i, v := range vals {
		if i > 0 {
			out = append(out, ',')
		}
		out = fmt.Appendf(out, "%d", v)
	}
	return string(out)
}
