package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/linfit/format"
)

// ErrPayloadTooLarge is returned when a decoded payload exceeds the caller's limit.
var ErrPayloadTooLarge = errors.New("payload exceeds size limit")

// Compressor compresses a complete payload into the codec's file/stream format.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete payload produced by the matching Compressor
// or by the reference command-line tool of the format (zstd, s2c, lz4, gzip).
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// StreamDecompressor exposes a streaming reader over compressed input.
//
// The streaming form lets callers bound the decoded size without materializing
// an unbounded buffer first.
type StreamDecompressor interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Codec combines compression, decompression, and streaming decompression.
type Codec interface {
	Compressor
	Decompressor
	StreamDecompressor
	// Type returns the compression type implemented by the codec.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Decode decompresses data and returns the decoded bytes together with the
// compression type that was applied.
//
// If hint is CompressionNone (or zero) the format is sniffed from the magic
// bytes of data. A limit <= 0 disables the size check; otherwise decoding stops
// with ErrPayloadTooLarge as soon as the output would exceed limit bytes.
func Decode(data []byte, hint format.CompressionType, limit int64) ([]byte, format.CompressionType, error) {
	ct := hint
	if ct == 0 || ct == format.CompressionNone {
		ct = format.DetectCompression(data)
	}

	if ct == format.CompressionNone {
		if limit > 0 && int64(len(data)) > limit {
			return nil, ct, ErrPayloadTooLarge
		}

		return data, ct, nil
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, ct, err
	}

	if limit <= 0 {
		out, err := codec.Decompress(data)
		if err != nil {
			return nil, ct, err
		}

		return out, ct, nil
	}

	r, err := codec.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, ct, fmt.Errorf("%s reader: %w", ct, err)
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, ct, fmt.Errorf("%s decompression failed: %w", ct, err)
	}
	if int64(len(out)) > limit {
		return nil, ct, ErrPayloadTooLarge
	}

	return out, ct, nil
}

// readAllClose drains r and closes it, keeping the first error seen.
func readAllClose(r io.ReadCloser) ([]byte, error) {
	out, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}

	return out, err
}
