// Package mem provides memory allocation for fragment buffers.
//
// # Aligned Allocation
//
// Provides 16-byte aligned, zero-filled allocation so that erasure-coding
// backends can run 128-bit word-parallel operations on fragment payloads.
// Large buffers are backed by anonymous memory mappings on unix, which lets
// allocation failure surface as an error instead of an abort.
package mem
