package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/linfit/format"
	"github.com/klauspost/compress/gzip"
)

// GzipCompressor reads and writes gzip members.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip codec.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Type returns format.CompressionGzip.
func (c GzipCompressor) Type() format.CompressionType {
	return format.CompressionGzip
}

// Compress compresses the input data into a gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip data.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return readAllClose(r)
}

// NewReader returns a streaming gzip decoder over r.
func (c GzipCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
