package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C(t *testing.T) {
	// Known vector: CRC32C("123456789") = 0xE3069283.
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
	assert.Equal(t, uint32(0), CRC32C(nil))
}

func TestNewCRC32CStreaming(t *testing.T) {
	data := []byte("fragment payload bytes")

	h := NewCRC32C()
	_, err := h.Write(data[:8])
	require.NoError(t, err)
	_, err = h.Write(data[8:])
	require.NoError(t, err)

	assert.Equal(t, CRC32C(data), h.Sum32())
}

func TestSumWidths(t *testing.T) {
	data := []byte("payload")

	assert.Len(t, SumCRC32C(data), CRC32CLen)
	assert.Len(t, SumMD5(data), MD5Len)
	assert.Len(t, SumBlake3(data), Blake3Len)
}

func TestSumCRC32CEncoding(t *testing.T) {
	// The byte form is the little-endian encoding of the checksum word.
	sum := SumCRC32C([]byte("123456789"))
	assert.Equal(t, []byte{0x83, 0x92, 0x06, 0xE3}, sum)
}

func TestSumsDiffer(t *testing.T) {
	a := SumBlake3([]byte("payload a"))
	b := SumBlake3([]byte("payload b"))
	assert.NotEqual(t, a, b)

	assert.NotEqual(t, SumMD5([]byte("payload a")), SumMD5([]byte("payload b")))
}
