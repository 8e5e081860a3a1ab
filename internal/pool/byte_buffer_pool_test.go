package pool

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("abcd"))

	bb.Grow(100)

	assert.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 100)
	assert.Equal(t, []byte("abcd"), bb.Bytes(), "Grow must preserve content")
}

func TestByteBuffer_ReadFromLimit(t *testing.T) {
	payload := strings.Repeat("3.14159 ", 10000)

	t.Run("unlimited", func(t *testing.T) {
		bb := NewByteBuffer(16)
		n, err := bb.ReadFromLimit(strings.NewReader(payload), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(len(payload)), n)
		assert.Equal(t, payload, string(bb.Bytes()))
	})

	t.Run("exactly at limit", func(t *testing.T) {
		bb := NewByteBuffer(16)
		_, err := bb.ReadFromLimit(strings.NewReader(payload), int64(len(payload)))
		require.NoError(t, err)
		assert.Equal(t, payload, string(bb.Bytes()))
	})

	t.Run("over limit", func(t *testing.T) {
		bb := NewByteBuffer(16)
		_, err := bb.ReadFromLimit(strings.NewReader(payload), int64(len(payload)-1))
		require.ErrorIs(t, err, ErrLimitExceeded)
	})

	t.Run("one byte reads", func(t *testing.T) {
		bb := NewByteBuffer(16)
		_, err := bb.ReadFromLimit(iotest.OneByteReader(strings.NewReader("1 2 3")), 5)
		require.NoError(t, err)
		assert.Equal(t, "1 2 3", string(bb.Bytes()))
	})

	t.Run("reader error", func(t *testing.T) {
		boom := errors.New("boom")
		bb := NewByteBuffer(16)
		_, err := bb.ReadFromLimit(iotest.ErrReader(boom), 0)
		require.ErrorIs(t, err, boom)
	})
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write(bytes.Repeat([]byte{'x'}, 10))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	big := NewByteBuffer(1024)
	p.Put(big) // dropped, above threshold
	p.Put(nil)
}

func TestDefaultPayloadPool(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("1 2"))
	PutPayloadBuffer(bb)
}
