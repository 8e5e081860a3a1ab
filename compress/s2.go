package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/linfit/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor reads and writes S2 framed streams. Snappy framed streams
// decode as well since S2 is a superset of Snappy.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data into an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := s2.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 or Snappy stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, _ := c.NewReader(bytes.NewReader(data))

	return readAllClose(r)
}

// NewReader returns a streaming S2 decoder over r.
func (c S2Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
