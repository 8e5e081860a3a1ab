package compress

import "github.com/arloliu/linfit/format"

// ZstdCompressor provides Zstandard compression.
//
// The pure-Go implementation (klauspost/compress) is used by default. Building
// with the gozstd tag switches to the cgo binding of the reference library.
//
// Zstd is the default codec of the remote payload cache: numeric text
// compresses well and cache entries are read far more often than written.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
//
// Example:
//
//	codec := NewZstdCompressor()
//	compressed, err := codec.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
