package utils

import (
	"encoding/binary"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// PRNG is the §6 Randomness collaborator: a strongly-seeded uniform
// generator supplying arbitrary-length random bytes and integers in a
// requested half-open range. It is a single-owner stream: callers must not
// drive the same PRNG from two goroutines concurrently.
type PRNG interface {
	// Read fills p with pseudo-random bytes and returns len(p), nil.
	Read(p []byte) (int, error)

	// IntN returns a pseudo-random integer in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Clock advances the stream and returns the next 32 bytes. Exposed so
	// callers needing deterministic replay (e.g. test vectors) can track
	// and restore position via GetClock/SetClock.
	Clock() []byte

	// GetClock returns the number of times Clock has advanced the stream.
	GetClock() uint64
}

// KeyedPRNG is the default PRNG implementation: a blake2b-512 keyed hash
// chain. Each Clock call consumes the current digest, returns its right
// half as output, and reseeds the hash state with the left half - the same
// construction as the teacher's dbfv.PRNG and ring.CRPGenerator.
type KeyedPRNG struct {
	hash  hash.Hash
	seed  []byte
	clock uint64
	buf   []byte
	pos   int
}

// NewKeyedPRNG creates a PRNG keyed by the given bytes. A nil key produces
// an unkeyed (but still deterministic-from-internal-state) stream; callers
// wanting unpredictability should key it from a system entropy source.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	h, err := blake2b.New512(key)
	if err != nil {
		return nil, fmt.Errorf("utils.NewKeyedPRNG: %w", err)
	}
	return &KeyedPRNG{hash: h}, nil
}

// Seed resets the PRNG state (keeping the key) and seeds it with seed.
// Also resets the clock cycle to 0.
func (p *KeyedPRNG) Seed(seed []byte) {
	p.hash.Reset()
	p.seed = append([]byte(nil), seed...)
	p.hash.Write(p.seed)
	p.clock = 0
	p.buf = nil
	p.pos = 0
}

// GetClock returns the current clock cycle.
func (p *KeyedPRNG) GetClock() uint64 {
	return p.clock
}

// SetClock advances the PRNG until its clock reaches n. It panics if n is
// smaller than the current clock, matching the teacher's PRNG.SetClock.
func (p *KeyedPRNG) SetClock(n uint64) {
	if n < p.clock {
		panic(fmt.Sprintf("utils.KeyedPRNG.SetClock: target clock %d is behind current clock %d", n, p.clock))
	}
	for p.clock < n {
		p.Clock()
	}
}

// Clock returns the right 32 bytes of the current digest and reseeds the
// state with the left 32 bytes, advancing the clock by 1.
func (p *KeyedPRNG) Clock() []byte {
	sum := p.hash.Sum(nil)
	p.hash.Write(sum[:32])
	p.clock++
	out := make([]byte, 32)
	copy(out, sum[32:])
	return out
}

// Read fills p with pseudo-random bytes drawn from successive Clock calls.
func (p *KeyedPRNG) Read(out []byte) (int, error) {
	n := 0
	for n < len(out) {
		if p.pos == len(p.buf) {
			p.buf = p.Clock()
			p.pos = 0
		}
		c := copy(out[n:], p.buf[p.pos:])
		n += c
		p.pos += c
	}
	return n, nil
}

// IntN returns a pseudo-random integer in [0, n), via rejection sampling
// against the smallest power-of-two mask covering n so the result is
// unbiased (beyond the bias inherent to the underlying hash stream).
func (p *KeyedPRNG) IntN(n int) int {
	if n <= 0 {
		panic("utils.KeyedPRNG.IntN: n must be positive")
	}
	if n == 1 {
		return 0
	}
	mask := uint32(1)
	for mask < uint32(n) {
		mask <<= 1
	}
	mask--
	var buf [4]byte
	for {
		p.Read(buf[:])
		v := binary.LittleEndian.Uint32(buf[:]) & mask
		if int(v) < n {
			return int(v)
		}
	}
}
