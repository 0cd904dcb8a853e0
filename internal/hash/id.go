// Package hash provides the xxHash64 primitive used to compute a tuple's
// structural hash from its canonical packed bytes.
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of data.
//
// Tuple.Hash() calls this over a tuple's packed byte representation, so two
// tuples that compare equal (same value sequence, any variant) always hash
// identically: the packed form is the canonical representation and does not
// depend on which concrete variant produced it.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of a string without a copy to []byte.
func String(data string) uint64 {
	return xxhash.Sum64String(data)
}
