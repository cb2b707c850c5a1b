package ecfrag

import (
	"fmt"
	"math/bits"
)

// BackendID identifies the erasure-coding backend that produced or will
// consume a stripe. The id is recorded in fragment headers and drives
// the alignment granularity.
type BackendID uint8

const (
	BackendNull BackendID = iota
	BackendJerasureRSVand
	BackendJerasureRSCauchy
	BackendFlatXORHD
	BackendISALRSVand
	BackendSHSS
	BackendNativeRSVand
	BackendISALRSCauchy
	BackendLibPhazr
)

var backendNames = map[BackendID]string{
	BackendNull:             "null",
	BackendJerasureRSVand:   "jerasure_rs_vand",
	BackendJerasureRSCauchy: "jerasure_rs_cauchy",
	BackendFlatXORHD:        "flat_xor_hd",
	BackendISALRSVand:       "isa_l_rs_vand",
	BackendSHSS:             "shss",
	BackendNativeRSVand:     "native_rs_vand",
	BackendISALRSCauchy:     "isa_l_rs_cauchy",
	BackendLibPhazr:         "libphazr",
}

func (id BackendID) String() string {
	if name, ok := backendNames[id]; ok {
		return name
	}
	return fmt.Sprintf("backend(%d)", uint8(id))
}

// BackendFromName returns the backend with the given stable name.
func BackendFromName(name string) (BackendID, error) {
	for id, n := range backendNames {
		if n == name {
			return id, nil
		}
	}
	return BackendNull, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Params are the coding parameters of a backend instance: K data
// fragments, M parity fragments, and the W-bit word the coding math
// operates on. They come from the backend configuration; this package
// only uses them to compute alignment.
type Params struct {
	K int
	M int
	W int
}

// machineWordBytes mirrors the width of the machine word the Cauchy
// packetized code paths operate on.
const machineWordBytes = bits.UintSize / 8

// cauchyPacketFactor scales the Cauchy granularity: Cauchy coding
// processes data in packetized blocks of machineWordBytes*128 bytes per
// word bit.
const cauchyPacketFactor = 128

// AlignedSize computes the payload length a caller must pad to before
// fragmenting, so the coding math operates on whole words with no
// remainder handling.
//
// For jerasure_rs_cauchy the granularity is K*W*(machineWordBytes*128),
// reflecting the packetized block structure of Cauchy coding. All other
// backends align to K*(W/8). The result is the smallest multiple of the
// granularity that is >= dataLen; zero-length input stays zero.
func AlignedSize(p Params, id BackendID, dataLen int) (int, error) {
	if p.K <= 0 || p.W <= 0 {
		return 0, fmt.Errorf("%w: k=%d w=%d", ErrInvalidArgument, p.K, p.W)
	}
	if dataLen < 0 {
		return 0, fmt.Errorf("%w: negative data length %d", ErrInvalidArgument, dataLen)
	}

	var granularity int
	if id == BackendJerasureRSCauchy {
		granularity = p.K * p.W * machineWordBytes * cauchyPacketFactor
	} else {
		wordSize := p.W / 8
		if wordSize == 0 {
			return 0, fmt.Errorf("%w: word width %d below one byte", ErrInvalidArgument, p.W)
		}
		granularity = p.K * wordSize
	}

	return (dataLen + granularity - 1) / granularity * granularity, nil
}
