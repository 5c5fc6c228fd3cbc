// Package hash provides the xxHash64 primitive used to bucket interned
// strings and shapes during encoding.
package hash

import "github.com/cespare/xxhash/v2"

// String computes the xxHash64 of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Bytes computes the xxHash64 of data.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
