// Package locus defines the transcript record produced by the GTF
// parser collaborator and batches consecutive transcripts into loci:
// maximal sets whose exon footprints overlap on one chromosome.
package locus

import (
	"errors"
	"sort"

	"github.com/katalvlaran/isoformgraph/ivl"
	"github.com/katalvlaran/isoformgraph/strand"
)

// ErrEmptyTranscript is returned for a transcript with zero exons.
var ErrEmptyTranscript = errors.New("locus: transcript has no exons")

// ErrInvalidInterval is returned when an exon's Start >= End, or the
// exon list is not strictly increasing and non-overlapping.
var ErrInvalidInterval = errors.New("locus: malformed or unordered exon list")

// Transcript is one per-sample transcript prediction, as produced by
// the external GTF/GFF parser.
type Transcript struct {
	ID     string
	Label  string // source sample id
	Chrom  string
	Strand strand.Strand
	Exons  []ivl.Exon
	Score  float64
}

// Validate checks the structural invariants the builder relies on:
// at least one exon, every exon well-formed, and the list strictly
// increasing with no overlap between consecutive exons.
func (t Transcript) Validate() error {
	if len(t.Exons) == 0 {
		return ErrEmptyTranscript
	}
	prev := t.Exons[0]
	if !prev.Valid() {
		return ErrInvalidInterval
	}
	for _, e := range t.Exons[1:] {
		if !e.Valid() || e.Start < prev.End {
			return ErrInvalidInterval
		}
		prev = e
	}
	return nil
}

// Span returns the transcript's overall footprint [first.Start,
// last.End).
func (t Transcript) Span() ivl.Exon {
	return ivl.Exon{Start: t.Exons[0].Start, End: t.Exons[len(t.Exons)-1].End}
}

// Batch is a maximal set of transcripts on one chromosome whose exon
// footprints overlap transitively.
type Batch struct {
	Chrom       string
	Transcripts []Transcript
}

// Batcher groups a stream of same-chromosome, coordinate-sorted
// transcripts into Batches. Transcripts across different chromosomes
// always start a new batch; callers (gtfio.Reader) are responsible for
// sorting transcripts by (Chrom, Span.Start) before feeding them in,
// since the parser is the sole component that sees raw file order.
type Batcher struct {
	chrom    string
	maxEnd   int
	current  []Transcript
	onBatch  func(Batch)
	isActive bool
}

// NewBatcher returns a Batcher that invokes onBatch once per completed
// locus.
func NewBatcher(onBatch func(Batch)) *Batcher {
	return &Batcher{onBatch: onBatch}
}

// Add feeds one transcript into the batcher. Transcripts must arrive
// sorted by (Chrom, Span().Start); Add flushes the current batch
// whenever t starts a new chromosome or a new, non-overlapping
// footprint.
func (b *Batcher) Add(t Transcript) {
	span := t.Span()
	if b.isActive && (t.Chrom != b.chrom || span.Start >= b.maxEnd) {
		b.flush()
	}
	if !b.isActive {
		b.chrom = t.Chrom
		b.maxEnd = span.End
		b.isActive = true
	} else if span.End > b.maxEnd {
		b.maxEnd = span.End
	}
	b.current = append(b.current, t)
}

// Close flushes any pending batch. Call it once after the last Add.
func (b *Batcher) Close() {
	b.flush()
}

func (b *Batcher) flush() {
	if len(b.current) == 0 {
		return
	}
	sort.SliceStable(b.current, func(i, j int) bool {
		return b.current[i].Span().Start < b.current[j].Span().Start
	})
	b.onBatch(Batch{Chrom: b.chrom, Transcripts: b.current})
	b.current = nil
	b.isActive = false
	b.maxEnd = 0
}
