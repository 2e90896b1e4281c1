package vectorstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCodecRoundTrip(t *testing.T) {
	in := []float32{0.0, 1.5, -2.25, 3.14159, -0.0001}

	out := decodeVector(encodeVector(in))
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], out[i], "component %d", i)
	}
}

func TestEncodeVectorLayout(t *testing.T) {
	// 1.0 as little-endian IEEE 754 float32.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, encodeVector([]float32{1.0}))
	assert.Empty(t, encodeVector(nil))
}

func TestDecodeVectorEmpty(t *testing.T) {
	assert.Empty(t, decodeVector(nil))
	assert.Empty(t, decodeVector([]byte{}))
}

func TestIsUnknownIndexErr(t *testing.T) {
	assert.True(t, isUnknownIndexErr(errors.New("Unknown index name")))
	assert.True(t, isUnknownIndexErr(errors.New("no such index")))
	assert.False(t, isUnknownIndexErr(errors.New("connection refused")))
	assert.False(t, isUnknownIndexErr(nil))
}
