package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Hex formats a 64-bit digest as a fixed-width, lower-case hexadecimal string.
func Hex(digest uint64) string {
	s := strconv.FormatUint(digest, 16)
	if len(s) < 16 {
		s = "0000000000000000"[len(s):] + s
	}

	return s
}
