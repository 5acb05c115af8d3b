// Package engine orchestrates one locus batch through the full
// pipeline of spec §4: build the splice graph, collapse it to a fixed
// point, split it into per-strand transcript graphs, and enumerate
// isoforms from each. It owns the locus/gene/TSS/transcript numbering
// convention the CLI prints, grounded on the original assembler's
// "L%07d|G%07d|TSS%07d|TU%07d" gene-name scheme.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/isoformgraph/collapse"
	"github.com/katalvlaran/isoformgraph/gtfio"
	"github.com/katalvlaran/isoformgraph/isograph"
	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/locus"
	"github.com/katalvlaran/isoformgraph/pathfind"
	"github.com/katalvlaran/isoformgraph/refine"
	"github.com/katalvlaran/isoformgraph/strand"
)

// Option customizes a Config.
type Option func(*Config)

// Config resolves the pipeline's tunables, one per CLI flag.
type Config struct {
	OverhangThreshold    int
	FractionMajorIsoform float64
	MaxPaths             int
}

// NewConfig resolves a Config from the CLI's three primary knobs.
func NewConfig(overhangThreshold int, fractionMajorIsoform float64, maxPaths int, opts ...Option) Config {
	cfg := Config{
		OverhangThreshold:    overhangThreshold,
		FractionMajorIsoform: fractionMajorIsoform,
		MaxPaths:             maxPaths,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Run assembles one locus batch into its surviving isoforms. locusID
// numbers the batch for the L%07d prefix of every emitted gene name;
// callers increment it once per call, matching GLOBAL_LOCUS_ID in the
// original assembler.
func Run(batch locus.Batch, locusID int, cfg Config, rng *rand.Rand) ([]gtfio.Isoform, error) {
	g, err := isograph.Build(batch)
	if err != nil {
		return nil, err
	}

	collapseCfg := collapse.NewConfig(collapse.WithTrim(cfg.OverhangThreshold))
	if _, err := collapse.Collapse(g, collapseCfg); err != nil {
		return nil, err
	}

	split := refine.Split(g)

	pfCfg := pathfind.NewConfig(cfg.FractionMajorIsoform, cfg.MaxPaths)

	var out []gtfio.Isoform
	for _, sub := range []refine.Subgraph{split.Plus, split.Minus} {
		isoforms, err := assembleSubgraph(batch.Chrom, locusID, sub, pfCfg, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, isoforms...)
	}
	return out, nil
}

func assembleSubgraph(chrom string, locusID int, sub refine.Subgraph, cfg pathfind.Config, rng *rand.Rand) ([]gtfio.Isoform, error) {
	// only SOURCE and SINK present: nothing assembled on this strand.
	if sub.Graph.Len() <= 2 {
		return nil, nil
	}

	result, err := pathfind.Enumerate(sub.Graph, sub.Source, sub.Sink, cfg, rng)
	if err != nil {
		return nil, err
	}

	comp := connectedComponents(sub.Graph)
	geneOf := make(map[int]int)
	nextGene := 1
	tssOf := make(map[[2]int]int)
	tssCount := make(map[int]int)
	txOf := make(map[[2]int]int)

	out := make([]gtfio.Isoform, 0, len(result.Paths))
	for _, p := range result.Paths {
		var exons []ivl.Exon
		for _, id := range p.Nodes {
			n := sub.Graph.Node(id)
			if n.Synthetic {
				continue
			}
			exons = append(exons, n.Exon)
		}
		if len(exons) == 0 {
			continue
		}

		raw := comp[exons0ID(p.Nodes, sub.Graph)]
		gene, ok := geneOf[raw]
		if !ok {
			gene = nextGene
			geneOf[raw] = gene
			nextGene++
		}
		// renumber TSS groups from 1 within each gene, in order of first
		// occurrence among the density-sorted paths.
		tssKey := [2]int{gene, p.TSSID}
		tss, ok := tssOf[tssKey]
		if !ok {
			tssCount[gene]++
			tss = tssCount[gene]
			tssOf[tssKey] = tss
		}
		key := [2]int{gene, tss}
		txOf[key]++
		tx := txOf[key]

		out = append(out, gtfio.Isoform{
			Chrom:   chrom,
			GeneID:  fmt.Sprintf("L%07d|G%07d", locusID, gene),
			TSSID:   tss,
			TxID:    fmt.Sprintf("TU%07d", tx),
			Strand:  strandOfNode(sub.Graph, p.Nodes),
			Density: p.Density,
			Exons:   exons,
		})
	}
	return out, nil
}

func exons0ID(nodes []isograph.NodeID, g *isograph.Graph) isograph.NodeID {
	for _, id := range nodes {
		if !g.Node(id).Synthetic {
			return id
		}
	}
	return nodes[0]
}

func strandOfNode(g *isograph.Graph, nodes []isograph.NodeID) strand.Strand {
	for _, id := range nodes {
		n := g.Node(id)
		if !n.Synthetic {
			return n.Strand
		}
	}
	return g.Node(nodes[0]).Strand
}

// connectedComponents assigns every non-synthetic node an arbitrary
// but stable component id, treating edges as undirected: two exon
// nodes joined by any chain of splice-graph edges belong to the same
// gene, matching the original assembler's per-connected-component gene
// grouping.
func connectedComponents(g *isograph.Graph) map[isograph.NodeID]int {
	comp := make(map[isograph.NodeID]int)
	next := 1
	for _, id := range g.NodeIDs() {
		if g.Node(id).Synthetic {
			continue
		}
		if _, seen := comp[id]; seen {
			continue
		}
		comp[id] = next
		queue := []isograph.NodeID{id}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			neighbors := append(append([]isograph.NodeID(nil), g.Successors(cur)...), g.Predecessors(cur)...)
			for _, nb := range neighbors {
				if g.Node(nb).Synthetic {
					continue
				}
				if _, seen := comp[nb]; seen {
					continue
				}
				comp[nb] = next
				queue = append(queue, nb)
			}
		}
		next++
	}
	return comp
}
