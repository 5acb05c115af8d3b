// Command isoformgraph assembles per-sample transcript predictions in
// one GTF/GFF file into isoform calls, written as BED12 to stdout.
// Flags mirror the original assembler's command line: --overhang,
// --fraction-major-isoform, and --max-paths.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/isoformgraph/engine"
	"github.com/katalvlaran/isoformgraph/gtfio"
	"github.com/katalvlaran/isoformgraph/internal/elog"
	"github.com/katalvlaran/isoformgraph/locus"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	overhang := flag.Int("overhang", 100, "trim ends of transcripts that extend into introns by <= N bases")
	fractionMajorIsoform := flag.Float64("fraction-major-isoform", 0.05, "report isoforms with density >= FRAC relative to the major isoform (0.0-1.0)")
	maxPaths := flag.Int("max-paths", 1000, "maximum number of paths to report per transcript graph")
	workers := flag.Int("workers", 4, "number of loci to assemble concurrently")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	log := elog.Default(*verbose)

	if err := run(filename, *overhang, *fractionMajorIsoform, *maxPaths, *workers, log, os.Stdout); err != nil {
		log.Fatalf("isoformgraph: %v", err)
	}
}

func run(filename string, overhang int, fractionMajorIsoform float64, maxPaths, workers int, log *elog.Logger, out io.Writer) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	label := sampleLabel(filename)
	reader := gtfio.NewReader(gff.NewReader(f), label)
	transcripts, err := reader.ReadAll()
	if err != nil {
		return err
	}
	log.Debugf("read %d transcripts from %s", len(transcripts), filename)

	var batches []locus.Batch
	batcher := locus.NewBatcher(func(b locus.Batch) { batches = append(batches, b) })
	for _, t := range transcripts {
		batcher.Add(t)
	}
	batcher.Close()
	log.Debugf("grouped into %d loci", len(batches))

	cfg := engine.NewConfig(overhang, fractionMajorIsoform, maxPaths)

	results := make([][]gtfio.Isoform, len(batches))
	eg, _ := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, workers)
	for i, batch := range batches {
		i, batch := i, batch
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			rng := rand.New(rand.NewSource(int64(i) + 1))
			isoforms, err := engine.Run(batch, i+1, cfg, rng)
			if err != nil {
				// a failing locus is skipped, not the whole run.
				log.Warnf("skipping %v", fmt.Errorf("locus %d (%s:%d-%d): %w", i+1, batch.Chrom, batch.Transcripts[0].Span().Start, batch.Transcripts[len(batch.Transcripts)-1].Span().End, err))
				return nil
			}
			results[i] = isoforms
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var all []gtfio.Isoform
	var densities []float64
	for _, isoforms := range results {
		all = append(all, isoforms...)
		for _, iso := range isoforms {
			densities = append(densities, iso.Density)
		}
	}

	if err := gtfio.WriteBED(out, all); err != nil {
		return err
	}

	if len(densities) > 0 {
		mean, stddev := stat.MeanStdDev(densities, nil)
		log.Debugf("assembled %d isoforms across %d loci, density mean=%.3f stddev=%.3f", len(all), len(batches), mean, stddev)
	}
	return nil
}

func sampleLabel(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
