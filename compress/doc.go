// Package compress provides decoders and encoders for compressed numeric payloads.
//
// Source documents for a fit (local files or HTTP bodies) may be shipped
// compressed. This package turns them back into plain text before parsing, and
// is also used by the remote payload cache to keep entries small.
//
// # Supported Algorithms
//
//   - None: payload is used as-is
//   - Zstd: Zstandard frames (klauspost/compress, or valyala/gozstd with the gozstd build tag)
//   - S2: S2 or Snappy framed streams (klauspost/compress/s2)
//   - LZ4: LZ4 frames (pierrec/lz4/v4)
//   - Gzip: gzip members (klauspost/compress/gzip)
//
// All codecs speak the file/stream format of the reference tools, so a
// document produced by `zstd`, `s2c`, `lz4` or `gzip` decodes directly.
//
// # Usage
//
//	text, ct, err := compress.Decode(raw, format.CompressionFromExtension(path), 64<<20)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("decoded %d bytes (%s)\n", len(text), ct)
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
package compress
