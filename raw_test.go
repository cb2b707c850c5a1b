package ecfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecfrag/ecfrag/testutil"
)

func TestValidateRaw(t *testing.T) {
	f := newTestFragment(t, 64)
	defer func() { _ = f.Free() }()

	require.NoError(t, Validate(f.Bytes()))

	// Nil and short slices are invalid arguments, reported before any
	// header validation.
	assert.ErrorIs(t, Validate(nil), ErrInvalidArgument)
	assert.ErrorIs(t, Validate(make([]byte, HeaderSize-1)), ErrInvalidArgument)

	// A buffer that was never a fragment fails the magic check.
	assert.ErrorIs(t, Validate(make([]byte, HeaderSize)), ErrInvalidHeader)
}

func TestParseHeader(t *testing.T) {
	f := newTestFragment(t, 256, WithBackend(BackendFlatXORHD, 7))
	defer func() { _ = f.Free() }()

	require.NoError(t, f.SetIndex(11))
	require.NoError(t, f.SetPayloadSize(200))
	require.NoError(t, f.SetOrigDataSize(123456))
	copy(f.Data(), []byte("wire payload"))
	require.NoError(t, f.UpdateChecksum())

	// Decode from the wire form, the way a remote consumer would.
	hdr, err := ParseHeader(f.Bytes())
	require.NoError(t, err)

	assert.Equal(t, uint32(11), hdr.Index)
	assert.Equal(t, uint32(200), hdr.PayloadSize)
	assert.Equal(t, uint64(123456), hdr.OrigDataSize)
	assert.Equal(t, BackendFlatXORHD, hdr.BackendID)
	assert.Equal(t, uint32(7), hdr.BackendVersion)
	assert.Equal(t, ChecksumCRC32C, hdr.ChecksumType)
	assert.False(t, hdr.ChecksumMismatch)

	testutil.FlipBit(f.Bytes(), 2)
	_, err = ParseHeader(f.Bytes())
	assert.ErrorIs(t, err, ErrInvalidHeader)
	testutil.FlipBit(f.Bytes(), 2)
}

func TestTotalSizeOf(t *testing.T) {
	f := newTestFragment(t, 128)
	defer func() { _ = f.Free() }()

	require.NoError(t, f.SetPayloadSize(100))

	total, err := TotalSizeOf(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 100+HeaderSize, total)

	_, err = TotalSizeOf(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// The trusted path reads the size field without a magic check.
	testutil.FlipBit(f.Bytes(), 1)
	total, err = TotalSizeOf(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 100+HeaderSize, total)
	testutil.FlipBit(f.Bytes(), 1)
}

func TestDataOf(t *testing.T) {
	f := newTestFragment(t, 64)
	defer func() { _ = f.Free() }()

	data := DataOf(f.Bytes())
	require.Len(t, data, 64)

	// The view aliases the payload region of the same allocation.
	data[0] = 0xAA
	assert.Equal(t, byte(0xAA), f.Data()[0])

	assert.Nil(t, DataOf(nil))
	assert.Nil(t, DataOf(make([]byte, HeaderSize-1)))
}

func TestFragmentDataViewSymmetry(t *testing.T) {
	f := newTestFragment(t, 512)
	defer func() { _ = f.Free() }()

	require.NoError(t, f.SetIndex(5))

	data := DataOf(f.Bytes())
	frag, err := FragmentOf(data)
	require.NoError(t, err)

	// The recovered view is the original buffer, not a copy.
	assert.Equal(t, len(f.Bytes()), len(frag))
	assert.Equal(t, &f.Bytes()[0], &frag[0])

	// And forward again: header size offsets cancel exactly.
	again := DataOf(frag)
	assert.Equal(t, &data[0], &again[0])
	assert.Len(t, again, len(data))

	hdr, err := ParseHeader(frag)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), hdr.Index)
}

func TestFragmentOfValidates(t *testing.T) {
	f := newTestFragment(t, 128)
	defer func() { _ = f.Free() }()

	data := DataOf(f.Bytes())

	testutil.FlipBit(f.Bytes(), 9)
	_, err := FragmentOf(data)
	assert.ErrorIs(t, err, ErrInvalidHeader)

	// The unchecked variant trusts the caller and returns the view
	// regardless of the corrupted magic.
	frag := FragmentOfUnchecked(data)
	require.NotNil(t, frag)
	assert.Equal(t, &f.Bytes()[0], &frag[0])

	testutil.FlipBit(f.Bytes(), 9)
}

func TestFragmentOfNilData(t *testing.T) {
	_, err := FragmentOf(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, FragmentOfUnchecked(nil))
}
