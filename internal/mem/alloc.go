package mem

import (
	"errors"
	"fmt"
	"unsafe"
)

// Alignment is the byte alignment guaranteed by AllocAligned (16 bytes,
// enough for 128-bit SIMD and word-parallel XOR).
const Alignment = 16

// MmapThreshold is the size at or above which aligned allocations are
// backed by an anonymous memory mapping instead of the Go heap.
const MmapThreshold = 256 << 10

// ErrInvalidSize is returned for non-positive allocation sizes.
var ErrInvalidSize = errors.New("mem: non-positive allocation size")

// errMmapUnsupported marks platforms without anonymous mappings; callers
// fall back to heap allocation.
var errMmapUnsupported = errors.New("mem: mmap unsupported")

// Buffer is an owned allocation. It remembers how it was obtained so that
// Release can return mapped memory to the kernel.
type Buffer struct {
	b   []byte
	raw []byte // full mapping when mapped, nil for heap buffers
}

// Bytes returns the usable region of the buffer, or nil after Release.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.b
}

// Len returns the usable size of the buffer in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.b)
}

// Release returns the buffer's memory. It is idempotent: releasing a nil
// or already-released buffer is a no-op. After Release the buffer reads
// as empty, so a stale handle cannot touch recycled memory.
func (b *Buffer) Release() error {
	if b == nil || b.b == nil {
		return nil
	}
	b.b = nil
	if b.raw != nil {
		raw := b.raw
		b.raw = nil
		if err := munmap(raw); err != nil {
			return fmt.Errorf("mem: munmap failed: %w", err)
		}
	}
	return nil
}

// AllocAligned allocates a zero-filled buffer of the given size whose
// start address is a multiple of Alignment.
//
// Buffers of MmapThreshold bytes or more come from an anonymous mapping
// (page-aligned and zeroed by the kernel); smaller ones over-allocate on
// the Go heap and slice to the first aligned offset.
func AllocAligned(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if size >= MmapThreshold {
		raw, err := mmap(size)
		if err == nil {
			return &Buffer{b: raw[:size], raw: raw}, nil
		}
		if !errors.Is(err, errMmapUnsupported) {
			return nil, fmt.Errorf("mem: mmap failed: %w", err)
		}
		// No mapping support on this platform; fall through to the heap.
	}

	return &Buffer{b: alignHeap(size)}, nil
}

// AllocFilled allocates a buffer of the given size with every byte set to
// value. No alignment is guaranteed.
func AllocFilled(size int, value byte) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	buf := make([]byte, size)
	if value != 0 {
		for i := range buf {
			buf[i] = value
		}
	}
	return &Buffer{b: buf}, nil
}

// alignHeap over-allocates on the Go heap and returns a slice starting at
// the first Alignment-multiple address. The underlying array is kept
// alive by the returned slice.
func alignHeap(size int) []byte {
	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}
