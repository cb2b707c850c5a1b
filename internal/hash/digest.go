package hash

import (
	"crypto/md5" //nolint:gosec // interop with legacy stripe producers, not security
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Digest widths in bytes.
const (
	CRC32CLen = 4
	MD5Len    = md5.Size
	Blake3Len = 32
)

// SumCRC32C returns the CRC32C checksum as little-endian bytes, the form
// stored in the fragment header checksum field.
func SumCRC32C(data []byte) []byte {
	out := make([]byte, CRC32CLen)
	binary.LittleEndian.PutUint32(out, CRC32C(data))
	return out
}

// SumMD5 returns the MD5 digest of data.
func SumMD5(data []byte) []byte {
	sum := md5.Sum(data) //nolint:gosec // interop, not security
	return sum[:]
}

// SumBlake3 returns the 256-bit BLAKE3 digest of data.
func SumBlake3(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}
