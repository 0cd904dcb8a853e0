// Package rangekey derives the half-open byte range that contains exactly
// the packed keys extending a given tuple prefix, and batch-packs many
// tuples that share a common prefix into one backing buffer.
package rangekey
