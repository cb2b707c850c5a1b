// Package ecfrag provides the fragment buffer and header subsystem of an
// erasure-coding engine.
//
// A fragment is one data or parity chunk of a stripe, stored as a fixed
// binary header followed by the payload in a single contiguous, 16-byte
// aligned allocation. The header carries the fragment's stripe index,
// payload size, original data size, and payload checksum, all gated by a
// magic word that detects corruption, foreign buffers, and use after
// free. The header layout is the wire contract: producers and consumers
// of a stripe must agree on it byte for byte.
//
// # Quick Start
//
// Producing a fragment:
//
//	aligned, _ := ecfrag.AlignedSize(ecfrag.Params{K: 10, M: 4, W: 8}, ecfrag.BackendISALRSVand, len(data))
//	frag, _ := ecfrag.New(aligned / 10)
//	copy(frag.Data(), chunk)
//	frag.SetIndex(3)
//	frag.SetPayloadSize(uint32(len(chunk)))
//	frag.SetOrigDataSize(uint64(len(data)))
//	frag.UpdateChecksum()
//	send(frag.Bytes())
//	frag.Free()
//
// Consuming one:
//
//	hdr, err := ecfrag.ParseHeader(received)
//	if err != nil {
//	    // not a fragment, or corrupted in flight
//	}
//	payload := ecfrag.DataOf(received)[:hdr.PayloadSize]
//
// # Validation Model
//
// Every header accessor validates the magic word before reading or
// writing and fails with ErrInvalidHeader otherwise. Two documented
// trusted paths skip the check for hot paths where validation already
// happened: the payload-view arithmetic (Fragment.Data, DataOf,
// FragmentOfUnchecked) and the on-wire footprint (TotalSize).
//
// # Concurrency
//
// Nothing in the package blocks or holds shared state: operations on
// distinct fragments are safe concurrently, operations on the same
// fragment must be serialized by the caller.
package ecfrag
