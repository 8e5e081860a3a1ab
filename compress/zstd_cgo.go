//go:build gozstd

package compress

import (
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using the reference Zstandard library.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

// gozstdReadCloser releases the C-side decoder on Close.
type gozstdReadCloser struct {
	*gozstd.Reader
}

func (r gozstdReadCloser) Close() error {
	r.Release()
	return nil
}

// NewReader returns a streaming Zstandard decoder over r.
func (c ZstdCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gozstdReadCloser{gozstd.NewReader(r)}, nil
}
