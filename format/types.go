package format

import (
	"bytes"
	"path"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed payload.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 (or Snappy) stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip member.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// compressionNames maps lower-case names (and common aliases) to compression types.
var compressionNames = map[string]CompressionType{
	"none":   CompressionNone,
	"zstd":   CompressionZstd,
	"zst":    CompressionZstd,
	"s2":     CompressionS2,
	"snappy": CompressionS2,
	"lz4":    CompressionLZ4,
	"gzip":   CompressionGzip,
	"gz":     CompressionGzip,
}

// ParseCompression returns the compression type for a name such as "zstd" or "gzip".
// The second result is false for unknown names.
func ParseCompression(name string) (CompressionType, bool) {
	c, ok := compressionNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// extensionTypes maps file suffixes to compression types.
var extensionTypes = map[string]CompressionType{
	".zst":    CompressionZstd,
	".zstd":   CompressionZstd,
	".s2":     CompressionS2,
	".sz":     CompressionS2,
	".snappy": CompressionS2,
	".lz4":    CompressionLZ4,
	".gz":     CompressionGzip,
}

// CompressionFromExtension returns the compression implied by the suffix of p.
// Query strings and fragments are ignored so URL paths work too.
// Unknown suffixes map to CompressionNone.
func CompressionFromExtension(p string) CompressionType {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if c, ok := extensionTypes[strings.ToLower(path.Ext(p))]; ok {
		return c
	}

	return CompressionNone
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic   = []byte{0xff, 0x06, 0x00, 0x00} // stream identifier chunk, shared by S2 and Snappy
	gzipMagic = []byte{0x1f, 0x8b}
)

// DetectCompression sniffs the leading magic bytes of data.
// Data that matches no known frame header is reported as CompressionNone.
func DetectCompression(data []byte) CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(data, s2Magic):
		return CompressionS2
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}
