package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	buf := make([]byte, n)
	r.Fill(buf)
	return buf
}

// Fill fills p with pseudo-random bytes.
func (r *RNG) Fill(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Read(p) //nolint:gosec // deterministic test data
}

// FlipBit inverts a single bit of buf, a minimal corruption that any
// checksum or magic check must catch.
func FlipBit(buf []byte, bit int) {
	buf[bit/8] ^= 1 << (bit % 8)
}
