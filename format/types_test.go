package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Gzip", CompressionGzip.String())
	require.Equal(t, "Unknown", CompressionType(0xff).String())
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
		ok   bool
	}{
		{"zstd", CompressionZstd, true},
		{" ZST ", CompressionZstd, true},
		{"snappy", CompressionS2, true},
		{"lz4", CompressionLZ4, true},
		{"gz", CompressionGzip, true},
		{"none", CompressionNone, true},
		{"brotli", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompression(tt.name)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCompressionFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want CompressionType
	}{
		{"data/x.txt", CompressionNone},
		{"data/x.txt.zst", CompressionZstd},
		{"data/x.TXT.GZ", CompressionGzip},
		{"https://example.com/y.lz4?token=abc", CompressionLZ4},
		{"https://example.com/y.s2#frag", CompressionS2},
		{"https://example.com/y", CompressionNone},
		{"", CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, CompressionFromExtension(tt.path))
		})
	}
}

func TestDetectCompression(t *testing.T) {
	require.Equal(t, CompressionZstd, DetectCompression([]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}))
	require.Equal(t, CompressionLZ4, DetectCompression([]byte{0x04, 0x22, 0x4d, 0x18, 0x64}))
	require.Equal(t, CompressionS2, DetectCompression([]byte{0xff, 0x06, 0x00, 0x00, 'S'}))
	require.Equal(t, CompressionGzip, DetectCompression([]byte{0x1f, 0x8b, 0x08}))
	require.Equal(t, CompressionNone, DetectCompression([]byte("1.0 2.0 3.0")))
	require.Equal(t, CompressionNone, DetectCompression(nil))
}
