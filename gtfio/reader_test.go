package gtfio

import (
	"strings"
	"testing"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoformgraph/strand"
)

const sampleGTF = "" +
	"chr1\t.\texon\t10\t20\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t1\";\n" +
	"chr1\t.\texon\t30\t40\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t1\";\n" +
	"chr1\t.\tCDS\t12\t18\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t1\";\n" +
	"chr1\t.\texon\t15\t25\t.\t-\t.\tgene_id \"g2\"; transcript_id \"t2\";\n"

func TestReadAllGroupsExonsByTranscript(t *testing.T) {
	r := NewReader(gff.NewReader(strings.NewReader(sampleGTF)), "sampleA")

	transcripts, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, transcripts, 2)

	t1 := transcripts[0]
	assert.Equal(t, "t1", t1.ID)
	assert.Equal(t, "sampleA", t1.Label)
	assert.Equal(t, "chr1", t1.Chrom)
	assert.Equal(t, strand.Plus, t1.Strand)
	require.Len(t, t1.Exons, 2)
	assert.Equal(t, 9, t1.Exons[0].Start)
	assert.Equal(t, 20, t1.Exons[0].End)
	assert.Equal(t, 29, t1.Exons[1].Start)
	assert.Equal(t, 40, t1.Exons[1].End)

	t2 := transcripts[1]
	assert.Equal(t, strand.Minus, t2.Strand)
}

func TestReadAllRejectsMissingTranscriptID(t *testing.T) {
	r := NewReader(gff.NewReader(strings.NewReader("chr1\t.\texon\t10\t20\t.\t+\t.\tgene_id \"g1\";\n")), "sampleA")
	_, err := r.ReadAll()
	assert.ErrorIs(t, err, ErrMissingAttribute)
}
