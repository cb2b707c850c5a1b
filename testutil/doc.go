// Package testutil provides testing utilities for ecfrag.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for deterministic payload generation and
// helpers for deliberately corrupting buffers.
//
// # Payload Generation
//
//	rng := testutil.NewRNG(seed)
//	payload := rng.Bytes(4096)
//
// # Corruption
//
//	testutil.FlipBit(buf, 0) // tamper with the header magic
package testutil
