package ecfrag

import (
	"fmt"

	"github.com/ecfrag/ecfrag/internal/header"
	"github.com/ecfrag/ecfrag/internal/mem"
)

// HeaderSize is the on-wire fragment header size in bytes. The wire
// footprint of a fragment is HeaderSize plus its payload size.
const HeaderSize = header.Size

// Fragment is an owned fragment buffer: a contiguous allocation holding
// the fragment header followed by the payload. It is the only
// constructor of valid headers, so the magic check inside the accessors
// acts as a corruption detector rather than the sole safety mechanism.
//
// A Fragment is not safe for concurrent use; operations on distinct
// fragments are. Ownership is exclusive: exactly one Free pairs with
// each successful New.
type Fragment struct {
	buf *mem.Buffer
	o   options
}

// New allocates a fragment buffer for payloadSize bytes of payload,
// 16-byte aligned and zero-filled, and stamps the header magic. The
// remaining header fields stay zero until set through the accessors.
//
// The checksum type and backend identity from the options are recorded
// in the header at creation, since they describe the producer rather
// than the payload.
func New(payloadSize int, opts ...Option) (*Fragment, error) {
	o := applyOptions(opts)

	if payloadSize < 0 {
		err := fmt.Errorf("%w: negative payload size %d", ErrInvalidArgument, payloadSize)
		o.metrics.RecordAlloc(0, err)
		return nil, err
	}

	total := header.Size + payloadSize
	buf, err := mem.AllocAligned(total)
	if err != nil {
		err = fmt.Errorf("fragment allocation: %w", err)
		o.metrics.RecordAlloc(total, err)
		o.logger.LogAlloc(payloadSize, total, err)
		return nil, err
	}

	b := buf.Bytes()
	header.Stamp(b)
	header.SetChecksumType(b, uint8(o.checksumType))
	header.SetBackendID(b, uint8(o.backendID))
	header.SetBackendVersion(b, o.backendVersion)

	o.metrics.RecordAlloc(total, nil)
	o.logger.LogAlloc(payloadSize, total, nil)

	return &Fragment{buf: buf, o: o}, nil
}

// Free releases the fragment buffer. A nil or already-freed handle is an
// invalid argument. If the header magic no longer matches, Free returns
// ErrInvalidHeader without releasing anything: freeing through a
// corrupted handle risks releasing unrelated memory, so a controlled
// leak is the safer failure. On success the magic is cleared first, so
// stale aliases of the buffer stop validating.
func (f *Fragment) Free() error {
	if f == nil || f.buf == nil {
		return fmt.Errorf("%w: nil fragment (free fragment)", ErrInvalidArgument)
	}

	b := f.buf.Bytes()
	if !header.Valid(b) {
		err := &HeaderError{Op: "free fragment"}
		f.o.logger.LogHeaderViolation(err.Op)
		f.o.metrics.RecordHeaderViolation(err.Op)
		f.o.metrics.RecordFree(err)
		return err
	}

	header.Clobber(b)
	err := f.buf.Release()
	f.buf = nil
	f.o.metrics.RecordFree(err)
	f.o.logger.LogFree(err)
	return err
}

// gate is the validation primitive behind every header accessor: nil
// checks before validation, then the magic check, with the detecting
// operation logged and counted on failure.
func (f *Fragment) gate(op string) ([]byte, error) {
	if f == nil || f.buf == nil {
		return nil, fmt.Errorf("%w: nil fragment (%s)", ErrInvalidArgument, op)
	}
	b := f.buf.Bytes()
	if !header.Valid(b) {
		f.o.logger.LogHeaderViolation(op)
		f.o.metrics.RecordHeaderViolation(op)
		return nil, &HeaderError{Op: op}
	}
	return b, nil
}

// Validate reports whether the header magic is intact. It is the
// primitive the other accessors are expressed in terms of; unlike them
// it does not log.
func (f *Fragment) Validate() error {
	if f == nil || f.buf == nil {
		return fmt.Errorf("%w: nil fragment (validate)", ErrInvalidArgument)
	}
	if !header.Valid(f.buf.Bytes()) {
		return &HeaderError{Op: "validate"}
	}
	return nil
}

// Bytes returns the whole buffer in wire form, header included. Nil for
// a freed or nil handle.
func (f *Fragment) Bytes() []byte {
	if f == nil || f.buf == nil {
		return nil
	}
	return f.buf.Bytes()
}

// Data returns the payload view of the buffer. This is pure offset
// arithmetic and deliberately skips the magic check: it is used
// internally after validation has already happened, and speculatively
// before a header is fully formed.
func (f *Fragment) Data() []byte {
	if f == nil || f.buf == nil {
		return nil
	}
	return f.buf.Bytes()[header.Size:]
}

// TotalSize returns the on-wire footprint: the size field plus
// HeaderSize. This path checks only for a nil handle, not the magic;
// callers needing the strict check use Validate first.
func (f *Fragment) TotalSize() (int, error) {
	if f == nil || f.buf == nil {
		return 0, fmt.Errorf("%w: nil fragment (get total size)", ErrInvalidArgument)
	}
	return int(header.PayloadSize(f.buf.Bytes())) + header.Size, nil
}

// Capacity returns the allocated payload capacity in bytes.
func (f *Fragment) Capacity() int {
	if f == nil || f.buf == nil {
		return 0
	}
	return f.buf.Len() - header.Size
}

// SetIndex records the fragment's position among the k+m fragments of
// its stripe.
func (f *Fragment) SetIndex(idx uint32) error {
	b, err := f.gate("set idx")
	if err != nil {
		return err
	}
	header.SetIndex(b, idx)
	return nil
}

// Index returns the fragment's position within its stripe.
func (f *Fragment) Index() (uint32, error) {
	b, err := f.gate("get idx")
	if err != nil {
		return 0, err
	}
	return header.Index(b), nil
}

// SetPayloadSize records the number of payload bytes actually written.
// A size beyond the allocated payload capacity is an invalid argument.
func (f *Fragment) SetPayloadSize(size uint32) error {
	b, err := f.gate("set size")
	if err != nil {
		return err
	}
	if int(size) > len(b)-header.Size {
		return fmt.Errorf("%w: payload size %d exceeds capacity %d",
			ErrInvalidArgument, size, len(b)-header.Size)
	}
	header.SetPayloadSize(b, size)
	return nil
}

// PayloadSize returns the recorded payload length in bytes.
func (f *Fragment) PayloadSize() (uint32, error) {
	b, err := f.gate("get size")
	if err != nil {
		return 0, err
	}
	return header.PayloadSize(b), nil
}

// SetOrigDataSize records the length of the original, pre-split,
// pre-padding data. Decoders use it to trim padding on reconstruction.
func (f *Fragment) SetOrigDataSize(size uint64) error {
	b, err := f.gate("set orig data size")
	if err != nil {
		return err
	}
	header.SetOrigDataSize(b, size)
	return nil
}

// OrigDataSize returns the recorded original data length.
func (f *Fragment) OrigDataSize() (uint64, error) {
	b, err := f.gate("get orig data size")
	if err != nil {
		return 0, err
	}
	return header.OrigDataSize(b), nil
}

// SetChecksum records a 32-bit payload checksum, the compact form used
// with ChecksumCRC32C. Wider digests go through SetChecksumDigest.
func (f *Fragment) SetChecksum(chksum uint32) error {
	b, err := f.gate("set chksum")
	if err != nil {
		return err
	}
	header.SetChecksumWord(b, chksum)
	return nil
}

// Checksum returns the recorded checksum as a 32-bit word.
func (f *Fragment) Checksum() (uint32, error) {
	b, err := f.gate("get chksum")
	if err != nil {
		return 0, err
	}
	return header.ChecksumWord(b), nil
}

// SetChecksumDigest records a full payload digest (up to 32 bytes,
// stored zero-padded).
func (f *Fragment) SetChecksumDigest(digest []byte) error {
	b, err := f.gate("set chksum")
	if err != nil {
		return err
	}
	if len(digest) > header.ChecksumLen {
		return fmt.Errorf("%w: digest length %d exceeds checksum field (%d bytes)",
			ErrInvalidArgument, len(digest), header.ChecksumLen)
	}
	header.SetChecksum(b, digest)
	return nil
}

// ChecksumDigest returns the recorded digest, truncated to the width of
// the header's checksum type. ChecksumNone yields nil.
func (f *Fragment) ChecksumDigest() ([]byte, error) {
	b, err := f.gate("get chksum")
	if err != nil {
		return nil, err
	}
	t := ChecksumType(header.ChecksumType(b))
	if t == ChecksumNone {
		return nil, nil
	}
	n := t.Size()
	if n == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChecksum, uint8(t))
	}
	return header.Checksum(b)[:n], nil
}

// ChecksumType returns the checksum algorithm recorded in the header.
func (f *Fragment) ChecksumType() (ChecksumType, error) {
	b, err := f.gate("get chksum")
	if err != nil {
		return ChecksumNone, err
	}
	return ChecksumType(header.ChecksumType(b)), nil
}

// UpdateChecksum computes the payload digest over the recorded payload
// size using the header's checksum type and stores it, clearing any
// previous mismatch flag.
func (f *Fragment) UpdateChecksum() error {
	b, err := f.gate("set chksum")
	if err != nil {
		return err
	}
	t := ChecksumType(header.ChecksumType(b))
	size := int(header.PayloadSize(b))
	if size > len(b)-header.Size {
		return fmt.Errorf("%w: payload size %d exceeds buffer", ErrInvalidArgument, size)
	}
	digest, err := t.Sum(b[header.Size : header.Size+size])
	if err != nil {
		return err
	}
	header.SetChecksum(b, digest)
	header.SetChecksumMismatch(b, false)
	return nil
}

// VerifyChecksum recomputes the payload digest and compares it against
// the header. On mismatch the header's chksum_mismatch flag is set and
// ErrChecksumMismatch returned.
func (f *Fragment) VerifyChecksum() error {
	b, err := f.gate("get chksum")
	if err != nil {
		return err
	}
	return verifyPayload(b)
}

// SetBackend records the producing backend's identity and version.
func (f *Fragment) SetBackend(id BackendID, version uint32) error {
	b, err := f.gate("set backend")
	if err != nil {
		return err
	}
	header.SetBackendID(b, uint8(id))
	header.SetBackendVersion(b, version)
	return nil
}

// Backend returns the recorded backend identity and version.
func (f *Fragment) Backend() (BackendID, uint32, error) {
	b, err := f.gate("get backend")
	if err != nil {
		return BackendNull, 0, err
	}
	return BackendID(header.BackendID(b)), header.BackendVersion(b), nil
}

// SetBackendMetadataSize records how many trailing payload bytes hold
// backend-specific metadata rather than coded data.
func (f *Fragment) SetBackendMetadataSize(size uint32) error {
	b, err := f.gate("set backend metadata size")
	if err != nil {
		return err
	}
	header.SetBackendMetaSize(b, size)
	return nil
}

// BackendMetadataSize returns the recorded backend metadata size.
func (f *Fragment) BackendMetadataSize() (uint32, error) {
	b, err := f.gate("get backend metadata size")
	if err != nil {
		return 0, err
	}
	return header.BackendMetaSize(b), nil
}

// Header returns a decoded copy of the whole header.
func (f *Fragment) Header() (Header, error) {
	b, err := f.gate("get header")
	if err != nil {
		return Header{}, err
	}
	return decodeHeader(b), nil
}
