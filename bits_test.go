package dafsa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitWriter(t *testing.T) {
	// write 101010 = 0x2a
	// write 010101 = 0x15
	// result: 10101001 01010000 = 0xa9 0x50
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	require.NoError(t, bw.WriteBits(0x2a, 6))
	require.NoError(t, bw.WriteBits(0x15, 6))
	require.NoError(t, bw.Flush())

	assert.Equal(t, []byte{0xa9, 0x50}, buffer.Bytes())
}

func TestBitSeeker(t *testing.T) {
	buffer := bytes.NewReader([]byte{0xa9, 0x50})
	bs := newBitSeeker(buffer)

	assert.Equal(t, uint64(0x2a), bs.ReadBits(6))
	assert.Equal(t, uint64(0x15), bs.ReadBits(6))
	require.NoError(t, bs.Err())

	bs.Seek(6)
	assert.Equal(t, uint64(0x15), bs.ReadBits(6))
	assert.Equal(t, int64(12), bs.Tell())
}

func TestBitsRoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	require.NoError(t, bw.WriteBits(1, 1))
	require.NoError(t, bw.WriteBits(0x1234_5678_9abc, 48))
	require.NoError(t, bw.WriteBits(5, 3))
	require.NoError(t, bw.Flush())

	bs := newBitSeeker(bytes.NewReader(buffer.Bytes()))
	assert.Equal(t, uint64(1), bs.ReadBits(1))
	assert.Equal(t, uint64(0x1234_5678_9abc), bs.ReadBits(48))
	assert.Equal(t, uint64(5), bs.ReadBits(3))
	require.NoError(t, bs.Err())
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 1 << 40}

	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	for _, v := range values {
		require.NoError(t, bw.WriteUvarint(v))
	}
	require.NoError(t, bw.Flush())

	bs := newBitSeeker(bytes.NewReader(buffer.Bytes()))
	for _, v := range values {
		assert.Equal(t, v, bs.ReadUvarint())
	}
	require.NoError(t, bs.Err())
}

func TestStringRoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	require.NoError(t, bw.WriteBits(1, 3)) // misalign on purpose
	require.NoError(t, bw.WriteString("kata"))
	require.NoError(t, bw.WriteString(""))
	require.NoError(t, bw.WriteString("üè"))
	require.NoError(t, bw.Flush())

	bs := newBitSeeker(bytes.NewReader(buffer.Bytes()))
	bs.Seek(3)
	assert.Equal(t, "kata", bs.ReadString())
	assert.Equal(t, "", bs.ReadString())
	assert.Equal(t, "üè", bs.ReadString())
	require.NoError(t, bs.Err())
}
