package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/linfit/format"
	"github.com/stretchr/testify/require"
)

func numericText(n int) []byte {
	var sb strings.Builder
	for i := range n {
		sb.WriteString("1.25 ")
		if i%10 == 9 {
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String())
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestCodecsProduceDetectableFrames(t *testing.T) {
	payload := numericText(500)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionGzip,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Equal(t, ct, format.DetectCompression(compressed))

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, out)
		})
	}
}

func TestDecodeSniffsFormatWithoutHint(t *testing.T) {
	payload := numericText(200)
	compressed, err := NewGzipCompressor().Compress(payload)
	require.NoError(t, err)

	out, ct, err := Decode(compressed, format.CompressionNone, 0)
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, ct)
	require.Equal(t, payload, out)
}

func TestDecodeHonorsHint(t *testing.T) {
	payload := numericText(200)
	compressed, err := NewLZ4Compressor().Compress(payload)
	require.NoError(t, err)

	out, ct, err := Decode(compressed, format.CompressionLZ4, int64(len(payload)))
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, ct)
	require.Equal(t, payload, out)
}

func TestDecodePlainText(t *testing.T) {
	payload := []byte("1 2 3\n4 5 6\n")

	out, ct, err := Decode(payload, 0, 0)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, ct)
	require.True(t, bytes.Equal(payload, out))
}

func TestDecodeLimit(t *testing.T) {
	payload := numericText(1000)

	_, _, err := Decode(payload, format.CompressionNone, 10)
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	compressed, err := NewZstdCompressor().Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	_, _, err = Decode(compressed, format.CompressionZstd, int64(len(payload)-1))
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	out, _, err := Decode(compressed, format.CompressionZstd, int64(len(payload)))
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestDecodeCorruptInput(t *testing.T) {
	corrupt := []byte{0x1f, 0x8b, 0x00, 0x01, 0x02}

	_, ct, err := Decode(corrupt, 0, 0)
	require.Error(t, err)
	require.Equal(t, format.CompressionGzip, ct)
}

func TestNoOpCompressorPassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("7 8 9")

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)

	out, err = codec.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEmptyInputDecompress(t *testing.T) {
	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor(), NewGzipCompressor()} {
		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func BenchmarkZstdDecode(b *testing.B) {
	payload := numericText(10000)
	compressed, err := NewZstdCompressor().Compress(payload)
	require.NoError(b, err)

	b.ResetTimer()
	for b.Loop() {
		_, _, _ = Decode(compressed, format.CompressionZstd, 0)
	}
}
