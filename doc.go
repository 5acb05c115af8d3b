// Package isoformgraph assembles a consensus set of transcript isoforms
// from overlapping per-sample transcript predictions.
//
// A caller feeds one locus (transcripts sharing a chromosome and an
// overlapping exon footprint) at a time to engine.Run. Internally the
// pipeline builds a splice graph (isograph), collapses and trims it
// (collapse), splits it into per-strand transcript graphs with synthetic
// source/sink nodes (refine), and enumerates suboptimal paths per
// connected component (pathfind). The GTF reader and BED writer under
// gtfio are external collaborators with a narrow contract to the engine;
// they do not participate in graph construction.
//
// Subpackages:
//
//	strand/    — the three-valued Strand tag and its compatibility rules
//	ivl/       — exon interval geometry and an interval-tree index
//	isograph/  — Node, Edge, Graph: the splice graph itself
//	collapse/  — the R1-R4 collapse rules and overhang trimming
//	refine/    — per-strand splitting and synthetic SOURCE/SINK insertion
//	pathfind/  — best-path DP and suboptimal-isoform enumeration
//	locus/     — transcript batching into loci
//	gtfio/     — GTF reader and BED writer collaborators
//	engine/    — wires the above into a single per-locus pipeline
package isoformgraph
