package ntru

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"

	"github.com/sqf-ice/pqcore/utils"
)

// Digest is the digest collaborator threaded into a parameter block: update
// accumulates bytes, Finalize returns the digest and resets internal state
// for reuse, and AlgorithmName is the identifier persisted in serialized
// parameter blocks. Size reports the digest length in bytes.
type Digest interface {
	Update(p []byte)
	Finalize() []byte
	Reset()
	AlgorithmName() string
	Size() int
}

// stdDigest adapts a standard hash.Hash into the Digest collaborator
// interface.
type stdDigest struct {
	name string
	h    hash.Hash
}

func (d *stdDigest) Update(p []byte)  { d.h.Write(p) }
func (d *stdDigest) Finalize() []byte {
	out := d.h.Sum(nil)
	d.h.Reset()
	return out
}
func (d *stdDigest) Reset()           { d.h.Reset() }
func (d *stdDigest) AlgorithmName() string { return d.name }
func (d *stdDigest) Size() int             { return d.h.Size() }

// NewSHA256Digest returns a Digest backed by crypto/sha256, algorithm name
// "SHA-256".
func NewSHA256Digest() Digest {
	return &stdDigest{name: "SHA-256", h: sha256.New()}
}

// NewSHA512Digest returns a Digest backed by crypto/sha512, algorithm name
// "SHA-512".
func NewSHA512Digest() Digest {
	return &stdDigest{name: "SHA-512", h: sha512.New()}
}

// blake3Digest adapts zeebo/blake3 into the Digest collaborator interface,
// offered alongside the fixed SHA-2 options as a faster alternative digest
// for parameter sets that opt into it.
type blake3Digest struct {
	h *blake3.Hasher
}

func (d *blake3Digest) Update(p []byte)      { d.h.Write(p) }
func (d *blake3Digest) Finalize() []byte {
	out := d.h.Sum(nil)
	d.h.Reset()
	return out
}
func (d *blake3Digest) Reset()               { d.h.Reset() }
func (d *blake3Digest) AlgorithmName() string { return "BLAKE3" }
func (d *blake3Digest) Size() int             { return 32 }

// NewBLAKE3Digest returns a Digest backed by github.com/zeebo/blake3.
func NewBLAKE3Digest() Digest {
	return &blake3Digest{h: blake3.New()}
}

// DigestFactory maps a stored algorithm name back to a fresh Digest
// instance. Deserialize does not call one; it only records the name.
type DigestFactory func(name string) (Digest, error)

// DefaultDigestFactory resolves the three digests this core ships
// (SHA-256, SHA-512, BLAKE3). Callers with additional digest algorithms
// provide their own DigestFactory.
func DefaultDigestFactory(name string) (Digest, error) {
	switch name {
	case "SHA-256":
		return NewSHA256Digest(), nil
	case "SHA-512":
		return NewSHA512Digest(), nil
	case "BLAKE3":
		return NewBLAKE3Digest(), nil
	default:
		return nil, fmt.Errorf("ntru.DefaultDigestFactory: %w: unknown digest algorithm %q", utils.ErrConfig, name)
	}
}
