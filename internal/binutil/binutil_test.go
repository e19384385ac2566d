package binutil

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAndByteCounts(t *testing.T) {
	var buf bytes.Buffer

	w := NewWriter(&buf)
	w.Uint32(0xDEADBEEF)
	w.Uint64(1 << 40)
	w.Float32(float32(math.Pi))
	w.Float64(math.NaN())
	w.Bytes([]byte("abc"))
	require.NoError(t, w.Err())
	assert.Equal(t, int64(4+8+4+8+3), w.BytesWritten())
	assert.Equal(t, int(w.BytesWritten()), buf.Len())

	r := NewReader(&buf)
	assert.Equal(t, uint32(0xDEADBEEF), r.Uint32())
	assert.Equal(t, uint64(1)<<40, r.Uint64())
	assert.Equal(t, float32(math.Pi), r.Float32())
	assert.True(t, math.IsNaN(r.Float64()), "NaN must survive the bit-level round trip")
	assert.Equal(t, []byte("abc"), r.Bytes(3))
	require.NoError(t, r.Err())
	assert.Equal(t, w.BytesWritten(), r.BytesRead())
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))

	r.Uint64()
	assert.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)

	// Errors are sticky: later reads return zero values.
	assert.Equal(t, uint32(0), r.Uint32())
	assert.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)
}
