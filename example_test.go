package ecfrag_test

import (
	"fmt"
	"log"

	"github.com/ecfrag/ecfrag"
)

// Example walks a payload chunk through the producer side of the
// fragment contract and reads it back the way a consumer would.
func Example() {
	params := ecfrag.Params{K: 4, M: 2, W: 8}
	data := make([]byte, 1000)

	// Pad the original data to the backend's alignment granularity so
	// it divides evenly across the k data fragments.
	aligned, err := ecfrag.AlignedSize(params, ecfrag.BackendISALRSVand, len(data))
	if err != nil {
		log.Fatal(err)
	}
	chunkSize := aligned / params.K

	frag, err := ecfrag.New(chunkSize, ecfrag.WithLogger(ecfrag.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}

	copy(frag.Data(), data[:chunkSize])
	_ = frag.SetIndex(0)
	_ = frag.SetPayloadSize(uint32(chunkSize))
	_ = frag.SetOrigDataSize(uint64(len(data)))
	_ = frag.UpdateChecksum()

	// The wire form travels as plain bytes; the consumer validates the
	// header before trusting anything in it.
	wire := frag.Bytes()
	hdr, err := ecfrag.ParseHeader(wire)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("aligned size:", aligned)
	fmt.Println("fragment payload:", hdr.PayloadSize)
	fmt.Println("original data:", hdr.OrigDataSize)

	if err := frag.Free(); err != nil {
		log.Fatal(err)
	}

	// Output:
	// aligned size: 1000
	// fragment payload: 250
	// original data: 1000
}
