// Package dedupe collapses multiple file-type variants of the same logical
// document into a single canonical winner.
//
// Candidates are grouped by their case-normalized name without extension.
// Within a group the first PDF (any case) wins; with no PDF present, the
// first member in input order wins. A group of one is passed through
// unchanged. Grouping is purely name-based; file contents are never read.
package dedupe
