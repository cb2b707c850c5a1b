package ecfrag

import (
	"fmt"
	"unsafe"

	"github.com/ecfrag/ecfrag/internal/header"
)

// The functions in this file operate on raw fragment byte slices rather
// than owned Fragment handles. Collaborators exchange fragments as plain
// bytes (on the wire, in coding backends), so the validation surface has
// to exist for both forms. The raw form carries the same contract: a
// header at offset 0, payload from HeaderSize on, and no field trusted
// before the magic checks out.

// Header is a decoded fragment header.
type Header struct {
	Index               uint32
	PayloadSize         uint32
	BackendMetadataSize uint32
	OrigDataSize        uint64
	ChecksumType        ChecksumType
	ChecksumMismatch    bool
	BackendID           BackendID
	BackendVersion      uint32
	Checksum            [32]byte
}

func decodeHeader(b []byte) Header {
	var h Header
	h.Index = header.Index(b)
	h.PayloadSize = header.PayloadSize(b)
	h.BackendMetadataSize = header.BackendMetaSize(b)
	h.OrigDataSize = header.OrigDataSize(b)
	h.ChecksumType = ChecksumType(header.ChecksumType(b))
	h.ChecksumMismatch = header.ChecksumMismatch(b)
	h.BackendID = BackendID(header.BackendID(b))
	h.BackendVersion = header.BackendVersion(b)
	copy(h.Checksum[:], header.Checksum(b))
	return h
}

// Validate reports whether frag starts with an intact fragment header.
// A nil or short slice is an invalid argument, reported before any
// validation is attempted.
func Validate(frag []byte) error {
	if len(frag) < HeaderSize {
		return fmt.Errorf("%w: buffer of %d bytes cannot hold a fragment header", ErrInvalidArgument, len(frag))
	}
	if !header.Valid(frag) {
		return &HeaderError{Op: "validate"}
	}
	return nil
}

// ParseHeader validates frag and decodes its full header. This is the
// probe consumers run on a received fragment before trusting the
// payload.
func ParseHeader(frag []byte) (Header, error) {
	if err := Validate(frag); err != nil {
		return Header{}, err
	}
	return decodeHeader(frag), nil
}

// TotalSizeOf returns the on-wire footprint recorded in frag: the size
// field plus HeaderSize. Like the handle form, this path does not check
// the magic, only that a header can be read at all.
func TotalSizeOf(frag []byte) (int, error) {
	if len(frag) < HeaderSize {
		return 0, fmt.Errorf("%w: buffer of %d bytes cannot hold a fragment header", ErrInvalidArgument, len(frag))
	}
	return int(header.PayloadSize(frag)) + HeaderSize, nil
}

// DataOf returns the payload view of a raw fragment buffer. Pure offset
// arithmetic, no validation; nil when the slice cannot hold a header.
func DataOf(frag []byte) []byte {
	if len(frag) < HeaderSize {
		return nil
	}
	return frag[HeaderSize:]
}

// FragmentOf recovers the enclosing fragment buffer from a payload view
// previously produced by DataOf or Fragment.Data, and validates its
// header. The reverse arithmetic is only defined for slices that really
// are payload views into a fragment allocation.
func FragmentOf(data []byte) ([]byte, error) {
	frag := FragmentOfUnchecked(data)
	if frag == nil {
		return nil, fmt.Errorf("%w: nil data pointer (get header ptr)", ErrInvalidArgument)
	}
	if !header.Valid(frag) {
		return nil, &HeaderError{Op: "get header ptr"}
	}
	return frag, nil
}

// FragmentOfUnchecked recovers the enclosing fragment buffer from a
// payload view without validating the header. For trusted internal hot
// paths where validation already happened.
func FragmentOfUnchecked(data []byte) []byte {
	if cap(data) == 0 {
		return nil
	}
	// The payload view starts HeaderSize bytes into the fragment
	// allocation, so the header lives immediately before it.
	p := unsafe.Pointer(unsafe.SliceData(data))
	base := (*byte)(unsafe.Add(p, -HeaderSize)) //nolint:gosec // reverse view within the same allocation
	return unsafe.Slice(base, len(data)+HeaderSize)
}
