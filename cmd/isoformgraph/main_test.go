package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isoformgraph/internal/elog"
)

func TestSampleLabelStripsExtension(t *testing.T) {
	assert.Equal(t, "sampleA", sampleLabel("/data/sampleA.gtf"))
	assert.Equal(t, "sampleA", sampleLabel("sampleA.gff3"))
}

const testGTF = "" +
	"chr1\t.\texon\t101\t200\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t1\";\n" +
	"chr1\t.\texon\t301\t400\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t1\";\n" +
	"chr1\t.\texon\t101\t200\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t2\";\n" +
	"chr1\t.\texon\t301\t400\t.\t+\t.\tgene_id \"g1\"; transcript_id \"t2\";\n"

func TestRunProducesBEDOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.gtf")
	require.NoError(t, os.WriteFile(path, []byte(testGTF), 0o644))

	var buf bytes.Buffer
	log := elog.New(&buf, false)
	err := run(path, 100, 0.05, 1000, 2, log, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "chr1\t100\t400")
}
