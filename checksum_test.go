package ecfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumTypeNames(t *testing.T) {
	for typ, name := range map[ChecksumType]string{
		ChecksumNone:   "none",
		ChecksumCRC32C: "crc32c",
		ChecksumMD5:    "md5",
		ChecksumBLAKE3: "blake3",
	} {
		assert.Equal(t, name, typ.String())

		got, err := ChecksumFromName(name)
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	assert.Contains(t, ChecksumType(99).String(), "99")

	_, err := ChecksumFromName("sha0")
	assert.ErrorIs(t, err, ErrUnknownChecksum)
}

func TestChecksumTypeSizes(t *testing.T) {
	assert.Equal(t, 0, ChecksumNone.Size())
	assert.Equal(t, 4, ChecksumCRC32C.Size())
	assert.Equal(t, 16, ChecksumMD5.Size())
	assert.Equal(t, 32, ChecksumBLAKE3.Size())
	assert.Equal(t, 0, ChecksumType(99).Size())
}

func TestChecksumTypeSum(t *testing.T) {
	data := []byte("payload bytes")

	for _, typ := range []ChecksumType{ChecksumCRC32C, ChecksumMD5, ChecksumBLAKE3} {
		digest, err := typ.Sum(data)
		require.NoError(t, err)
		assert.Len(t, digest, typ.Size())

		// Deterministic.
		again, err := typ.Sum(data)
		require.NoError(t, err)
		assert.Equal(t, digest, again)
	}

	digest, err := ChecksumNone.Sum(data)
	require.NoError(t, err)
	assert.Nil(t, digest)

	_, err = ChecksumType(99).Sum(data)
	assert.ErrorIs(t, err, ErrUnknownChecksum)
}
