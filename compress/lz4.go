package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/linfit/format"
	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor reads and writes LZ4 frames.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
//
// Returns:
//   - LZ4Compressor: New LZ4 codec instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into an LZ4 frame.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed frame
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
//
// Parameters:
//   - data: Compressed data to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error if the frame is corrupted
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, _ := c.NewReader(bytes.NewReader(data))

	return readAllClose(r)
}

// NewReader returns a streaming LZ4 frame decoder over r.
func (c LZ4Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
