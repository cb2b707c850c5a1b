package ecfrag

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedSize(t *testing.T) {
	p := Params{K: 10, M: 4, W: 8}

	tests := []struct {
		name    string
		backend BackendID
		dataLen int
		want    int
	}{
		// word_size=1, granularity k*word_size=10
		{name: "round up", backend: BackendISALRSVand, dataLen: 77, want: 80},
		{name: "already aligned", backend: BackendISALRSVand, dataLen: 80, want: 80},
		{name: "one byte", backend: BackendJerasureRSVand, dataLen: 1, want: 10},
		{name: "zero stays zero", backend: BackendFlatXORHD, dataLen: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AlignedSize(p, tt.backend, tt.dataLen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlignedSizeWideWord(t *testing.T) {
	// w=32: word_size=4, granularity k*4.
	got, err := AlignedSize(Params{K: 6, M: 3, W: 32}, BackendNativeRSVand, 100)
	require.NoError(t, err)
	assert.Equal(t, 120, got)
}

func TestAlignedSizeCauchy(t *testing.T) {
	p := Params{K: 4, M: 2, W: 8}
	granule := 4 * 8 * (bits.UintSize / 8) * 128

	// Anything below one granule rounds up to exactly one granule.
	got, err := AlignedSize(p, BackendJerasureRSCauchy, 1)
	require.NoError(t, err)
	assert.Equal(t, granule, got)

	got, err = AlignedSize(p, BackendJerasureRSCauchy, granule)
	require.NoError(t, err)
	assert.Equal(t, granule, got)

	got, err = AlignedSize(p, BackendJerasureRSCauchy, granule+1)
	require.NoError(t, err)
	assert.Equal(t, 2*granule, got)
}

func TestAlignedSizeInvalid(t *testing.T) {
	_, err := AlignedSize(Params{K: 0, M: 4, W: 8}, BackendNull, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = AlignedSize(Params{K: 10, M: 4, W: 0}, BackendNull, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Sub-byte words have no byte granularity outside the Cauchy path.
	_, err = AlignedSize(Params{K: 10, M: 4, W: 4}, BackendFlatXORHD, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = AlignedSize(Params{K: 10, M: 4, W: 8}, BackendNull, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBackendNames(t *testing.T) {
	for id, name := range map[BackendID]string{
		BackendNull:             "null",
		BackendJerasureRSCauchy: "jerasure_rs_cauchy",
		BackendISALRSCauchy:     "isa_l_rs_cauchy",
		BackendLibPhazr:         "libphazr",
	} {
		assert.Equal(t, name, id.String())

		got, err := BackendFromName(name)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	assert.Contains(t, BackendID(200).String(), "200")

	_, err := BackendFromName("nope")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
