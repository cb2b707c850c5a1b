// Package header defines the fixed on-wire layout of the fragment header.
//
// The header prefixes every fragment buffer. All multi-byte fields are
// little-endian with fixed widths, so fragments produced on one machine
// decode identically on any other. The magic word gates every other
// field: this package only peeks and pokes raw bytes, the validation
// policy lives in the public API.
package header

import (
	"encoding/binary"
	"errors"
)

const (
	// Magic marks a buffer as a fragment buffer. A buffer whose first
	// word does not match must not be interpreted any further.
	Magic = 0x0b0c5ecc

	// Size is the full header size in bytes, including reserved space.
	Size = 80

	// ChecksumLen is the width of the checksum field. Digests shorter
	// than this are stored left-aligned and zero-padded.
	ChecksumLen = 32
)

// Field offsets within the header.
const (
	offMagic            = 0  // uint32
	offIndex            = 4  // uint32
	offPayloadSize      = 8  // uint32
	offBackendMetaSize  = 12 // uint32
	offOrigDataSize     = 16 // uint64
	offChecksumType     = 24 // uint8
	offChecksumMismatch = 25 // uint8
	offBackendID        = 26 // uint8
	// offset 27 is padding
	offBackendVersion = 28 // uint32
	offChecksum       = 32 // [ChecksumLen]byte
	// offsets 64..79 are reserved
)

// ErrShortBuffer is returned when a buffer cannot hold a full header.
var ErrShortBuffer = errors.New("header: buffer shorter than header size")

// Stamp writes the magic word into buf. The caller guarantees buf holds
// at least Size bytes of a fresh, zeroed allocation.
func Stamp(buf []byte) {
	binary.LittleEndian.PutUint32(buf[offMagic:], Magic)
}

// Valid reports whether buf starts with an intact fragment header magic.
func Valid(buf []byte) bool {
	if len(buf) < Size {
		return false
	}
	return binary.LittleEndian.Uint32(buf[offMagic:]) == Magic
}

// Clobber overwrites the magic word. Used when invalidating a header on
// free so stale copies of the buffer no longer validate.
func Clobber(buf []byte) {
	binary.LittleEndian.PutUint32(buf[offMagic:], 0)
}

func Index(buf []byte) uint32       { return binary.LittleEndian.Uint32(buf[offIndex:]) }
func SetIndex(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf[offIndex:], v) }

func PayloadSize(buf []byte) uint32       { return binary.LittleEndian.Uint32(buf[offPayloadSize:]) }
func SetPayloadSize(buf []byte, v uint32) { binary.LittleEndian.PutUint32(buf[offPayloadSize:], v) }

func BackendMetaSize(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[offBackendMetaSize:])
}

func SetBackendMetaSize(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[offBackendMetaSize:], v)
}

func OrigDataSize(buf []byte) uint64       { return binary.LittleEndian.Uint64(buf[offOrigDataSize:]) }
func SetOrigDataSize(buf []byte, v uint64) { binary.LittleEndian.PutUint64(buf[offOrigDataSize:], v) }

func ChecksumType(buf []byte) uint8       { return buf[offChecksumType] }
func SetChecksumType(buf []byte, v uint8) { buf[offChecksumType] = v }

func ChecksumMismatch(buf []byte) bool { return buf[offChecksumMismatch] != 0 }

func SetChecksumMismatch(buf []byte, mismatch bool) {
	if mismatch {
		buf[offChecksumMismatch] = 1
	} else {
		buf[offChecksumMismatch] = 0
	}
}

func BackendID(buf []byte) uint8       { return buf[offBackendID] }
func SetBackendID(buf []byte, v uint8) { buf[offBackendID] = v }

func BackendVersion(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[offBackendVersion:])
}

func SetBackendVersion(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[offBackendVersion:], v)
}

// Checksum returns the checksum field bytes.
func Checksum(buf []byte) []byte {
	out := make([]byte, ChecksumLen)
	copy(out, buf[offChecksum:offChecksum+ChecksumLen])
	return out
}

// SetChecksum writes digest into the checksum field, left-aligned and
// zero-padded. Digests longer than ChecksumLen are rejected by the
// public API before reaching this point.
func SetChecksum(buf []byte, digest []byte) {
	field := buf[offChecksum : offChecksum+ChecksumLen]
	n := copy(field, digest)
	for i := n; i < ChecksumLen; i++ {
		field[i] = 0
	}
}

// ChecksumWord reads the first four checksum bytes as a little-endian
// word. This is the compact integer-checksum surface used with CRC32.
func ChecksumWord(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[offChecksum:])
}

// SetChecksumWord writes a little-endian word into the first four
// checksum bytes, leaving the rest of the field untouched.
func SetChecksumWord(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[offChecksum:], v)
}
