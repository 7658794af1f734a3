// Package ntru models the NTRUEncrypt parameter block (C10): the
// invariants governing key-generation and encryption buffer sizing, shared
// by reference with the NTRU key-generation/encryption engine (a peer
// component, not implemented here). Follows the Literal/Parameters split:
// Literal is a public, unchecked, JSON-friendly representation; Parameters
// is the private, validated, derived-field-complete representation built
// from it.
package ntru

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"

	"github.com/google/go-cmp/cmp"

	"github.com/sqf-ice/pqcore/utils"
)

// PolyType selects which of the two private-key density shapes a
// parameter set uses.
type PolyType int

const (
	// Simple indicates a single density parameter Df.
	Simple PolyType = iota
	// Product indicates the product-form density triple (Df1, Df2, Df3).
	Product
)

func (t PolyType) String() string {
	switch t {
	case Simple:
		return "SIMPLE"
	case Product:
		return "PRODUCT"
	default:
		return fmt.Sprintf("PolyType(%d)", int(t))
	}
}

// Literal is the public, unchecked representation of an NTRU parameter
// set: user-facing fields only, validated and expanded into derived fields
// by NewParametersFromLiteral.
type Literal struct {
	N               int      `json:",omitempty"`
	Q               int      `json:",omitempty"`
	Df              int      `json:",omitempty"`
	Df1             int      `json:",omitempty"`
	Df2             int      `json:",omitempty"`
	Df3             int      `json:",omitempty"`
	Db              int      `json:",omitempty"`
	Dm0             int      `json:",omitempty"`
	C               int      `json:",omitempty"`
	MinCallsR       int      `json:",omitempty"`
	MinCallsMask    int      `json:",omitempty"`
	HashSeed        bool     `json:",omitempty"`
	Sparse          bool     `json:",omitempty"`
	FastFp          bool     `json:",omitempty"`
	PolyType        PolyType `json:",omitempty"`
	OID             []byte   `json:",omitempty"`
	DigestAlgorithm string   `json:",omitempty"`
}

// Parameters is the validated NTRU parameter block. Fields are private and
// immutable after construction; derived fields are a pure function of the
// primary inputs (per spec, two parameter blocks with identical primary
// inputs and digest algorithm must be Equal and have equal Hash).
type Parameters struct {
	n, q                     int
	df, df1, df2, df3        int
	db, dm0, c               int
	minCallsR, minCallsMask  int
	hashSeed, sparse, fastFp bool
	polyType                 PolyType
	oid                      []byte
	digestAlgorithm          string

	// derived, pure functions of the primary fields above
	dr, dr1, dr2, dr3 int
	dg                int
	llen              int
	maxMsgLenBytes    int
	bufferLenBits     int
	bufferLenTrits    int
	pkLen             int
}

// NewParametersFromLiteral validates lit and derives the full parameter
// block. Fails with ConfigError on invalid N/Q/PolyType combinations.
func NewParametersFromLiteral(lit Literal) (Parameters, error) {
	if lit.N <= 0 {
		return Parameters{}, fmt.Errorf("ntru.NewParametersFromLiteral: %w: N must be positive", utils.ErrConfig)
	}
	if lit.Q <= 0 || lit.Q&(lit.Q-1) != 0 {
		return Parameters{}, fmt.Errorf("ntru.NewParametersFromLiteral: %w: q=%d must be a power of two", utils.ErrConfig, lit.Q)
	}

	switch lit.PolyType {
	case Simple:
		if lit.Df <= 0 {
			return Parameters{}, fmt.Errorf("ntru.NewParametersFromLiteral: %w: SIMPLE poly type requires Df > 0", utils.ErrConfig)
		}
	case Product:
		if lit.Df1 <= 0 || lit.Df2 <= 0 || lit.Df3 <= 0 {
			return Parameters{}, fmt.Errorf("ntru.NewParametersFromLiteral: %w: PRODUCT poly type requires Df1, Df2, Df3 > 0", utils.ErrConfig)
		}
	default:
		return Parameters{}, fmt.Errorf("ntru.NewParametersFromLiteral: %w: unknown poly type %d", utils.ErrConfig, lit.PolyType)
	}

	oid := make([]byte, len(lit.OID))
	copy(oid, lit.OID)

	p := Parameters{
		n: lit.N, q: lit.Q,
		df: lit.Df, df1: lit.Df1, df2: lit.Df2, df3: lit.Df3,
		db: lit.Db, dm0: lit.Dm0, c: lit.C,
		minCallsR: lit.MinCallsR, minCallsMask: lit.MinCallsMask,
		hashSeed: lit.HashSeed, sparse: lit.Sparse, fastFp: lit.FastFp,
		polyType:        lit.PolyType,
		oid:             oid,
		digestAlgorithm: lit.DigestAlgorithm,
	}
	p.deriveFields()
	return p, nil
}

// deriveFields computes every derived attribute as a pure function of the
// primary inputs, per spec.md §3:
//
//	dr = df (or dr1,dr2,dr3 = df1,df2,df3)
//	dg = floor(N/3)
//	llen = 1
//	maxMsgLenBytes = floor(3N/16) - llen - db/8 - 1
//	bufferLenBits = 8*ceil((3N/2 + 7)/8) + 1
//	bufferLenTrits = N - 1
//	pkLen = db
func (p *Parameters) deriveFields() {
	p.dr = p.df
	p.dr1, p.dr2, p.dr3 = p.df1, p.df2, p.df3
	p.dg = p.n / 3
	p.llen = 1
	p.maxMsgLenBytes = (3*p.n)/16 - p.llen - p.db/8 - 1
	p.bufferLenBits = 8*ceilDiv(3*p.n/2+7, 8) + 1
	p.bufferLenTrits = p.n - 1
	p.pkLen = p.db
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// N returns the polynomial ring degree.
func (p Parameters) N() int { return p.n }

// Q returns the big modulus.
func (p Parameters) Q() int { return p.q }

// Df returns the SIMPLE-form private-key density; 0 for PRODUCT sets.
func (p Parameters) Df() int { return p.df }

// Df1, Df2, Df3 return the PRODUCT-form private-key density triple; 0 for
// SIMPLE sets.
func (p Parameters) Df1() int { return p.df1 }
func (p Parameters) Df2() int { return p.df2 }
func (p Parameters) Df3() int { return p.df3 }

// Db returns the number of random bits used in blinding polynomial
// generation.
func (p Parameters) Db() int { return p.db }

// Dm0 returns the minimum number of -1's, 0's, and 1's in the message
// representative.
func (p Parameters) Dm0() int { return p.dm0 }

// C returns the minimum number of hash calls constant.
func (p Parameters) C() int { return p.c }

// MinCallsR returns the minimum number of hash calls for the blinding
// polynomial.
func (p Parameters) MinCallsR() int { return p.minCallsR }

// MinCallsMask returns the minimum number of hash calls for the mask
// generation function.
func (p Parameters) MinCallsMask() int { return p.minCallsMask }

// HashSeed reports whether the seed for the IGF/MGF should itself be
// hashed before use.
func (p Parameters) HashSeed() bool { return p.hashSeed }

// Sparse reports whether the sparse polynomial representation should be
// used.
func (p Parameters) Sparse() bool { return p.sparse }

// FastFp reports whether the private key polynomial f is chosen of the
// form 1+p*F for fast inversion.
func (p Parameters) FastFp() bool { return p.fastFp }

// PolyType returns SIMPLE or PRODUCT.
func (p Parameters) PolyType() PolyType { return p.polyType }

// OID returns a copy of the object identifier bytes.
func (p Parameters) OID() []byte {
	out := make([]byte, len(p.oid))
	copy(out, p.oid)
	return out
}

// DigestAlgorithm returns the digest algorithm name used in serialization
// and resolved by a DigestFactory on deserialization.
func (p Parameters) DigestAlgorithm() string { return p.digestAlgorithm }

// Dr, Dr1, Dr2, Dr3 mirror Df/Df1/Df2/Df3: the blinding polynomial density
// is the same as the private-key density in this parameter model.
func (p Parameters) Dr() int  { return p.dr }
func (p Parameters) Dr1() int { return p.dr1 }
func (p Parameters) Dr2() int { return p.dr2 }
func (p Parameters) Dr3() int { return p.dr3 }

// Dg returns floor(N/3), the density of the private polynomial g.
func (p Parameters) Dg() int { return p.dg }

// LLen returns the length, in bytes, of the plaintext length prefix.
func (p Parameters) LLen() int { return p.llen }

// MaxMsgLenBytes returns the maximum plaintext message length in bytes.
func (p Parameters) MaxMsgLenBytes() int { return p.maxMsgLenBytes }

// BufferLenBits returns the IGF/MGF working buffer length in bits.
func (p Parameters) BufferLenBits() int { return p.bufferLenBits }

// BufferLenTrits returns the IGF/MGF working buffer length in trits.
func (p Parameters) BufferLenTrits() int { return p.bufferLenTrits }

// PkLen returns the public-key blinding length in bits (equal to Db).
func (p Parameters) PkLen() int { return p.pkLen }

// ToLiteral returns the Literal representation p was (or could have been)
// constructed from.
func (p Parameters) ToLiteral() Literal {
	return Literal{
		N: p.n, Q: p.q,
		Df: p.df, Df1: p.df1, Df2: p.df2, Df3: p.df3,
		Db: p.db, Dm0: p.dm0, C: p.c,
		MinCallsR: p.minCallsR, MinCallsMask: p.minCallsMask,
		HashSeed: p.hashSeed, Sparse: p.sparse, FastFp: p.fastFp,
		PolyType:        p.polyType,
		OID:             p.OID(),
		DigestAlgorithm: p.digestAlgorithm,
	}
}

// Clone reproduces all primary inputs, and thus all derived values, of p.
func (p Parameters) Clone() Parameters {
	q, _ := NewParametersFromLiteral(p.ToLiteral())
	return q
}

// Equal compares every primary and every derived field, plus the digest
// algorithm name.
func (p Parameters) Equal(other Parameters) bool {
	return p.n == other.n &&
		p.q == other.q &&
		p.df == other.df && p.df1 == other.df1 && p.df2 == other.df2 && p.df3 == other.df3 &&
		p.db == other.db && p.dm0 == other.dm0 && p.c == other.c &&
		p.minCallsR == other.minCallsR && p.minCallsMask == other.minCallsMask &&
		p.hashSeed == other.hashSeed && p.sparse == other.sparse && p.fastFp == other.fastFp &&
		p.polyType == other.polyType &&
		cmp.Equal(p.oid, other.oid) &&
		p.digestAlgorithm == other.digestAlgorithm &&
		p.dr == other.dr && p.dr1 == other.dr1 && p.dr2 == other.dr2 && p.dr3 == other.dr3 &&
		p.dg == other.dg && p.llen == other.llen &&
		p.maxMsgLenBytes == other.maxMsgLenBytes &&
		p.bufferLenBits == other.bufferLenBits &&
		p.bufferLenTrits == other.bufferLenTrits &&
		p.pkLen == other.pkLen
}

// Hash combines every attribute of p into a single order-independent
// checksum: per-field FNV-1a digests, each prefixed with the field's
// position in the sequence below, XORed together, so permuting struct field
// declaration order never changes the result and two fields holding equal
// values do not cancel each other out.
func (p Parameters) Hash() uint64 {
	var acc uint64
	var tag byte
	mix := func(b []byte) {
		h := fnv.New64a()
		h.Write([]byte{tag})
		tag++
		h.Write(b)
		acc ^= h.Sum64()
	}
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		mix(buf[:])
	}
	putInt(p.n)
	putInt(p.q)
	putInt(p.df)
	putInt(p.df1)
	putInt(p.df2)
	putInt(p.df3)
	putInt(p.db)
	putInt(p.dm0)
	putInt(p.c)
	putInt(p.minCallsR)
	putInt(p.minCallsMask)
	putInt(boolToInt(p.hashSeed))
	putInt(boolToInt(p.sparse))
	putInt(boolToInt(p.fastFp))
	putInt(int(p.polyType))
	mix(p.oid)
	mix([]byte(p.digestAlgorithm))
	putInt(p.dr)
	putInt(p.dr1)
	putInt(p.dr2)
	putInt(p.dr3)
	putInt(p.dg)
	putInt(p.llen)
	putInt(p.maxMsgLenBytes)
	putInt(p.bufferLenBits)
	putInt(p.bufferLenTrits)
	putInt(p.pkLen)
	return acc
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MarshalJSON returns the JSON representation of p's Literal form.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToLiteral())
}

// UnmarshalJSON reads a Literal JSON representation into the receiver.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var lit Literal
	if err := json.Unmarshal(data, &lit); err != nil {
		return fmt.Errorf("ntru.Parameters.UnmarshalJSON: %w", err)
	}
	parsed, err := NewParametersFromLiteral(lit)
	if err != nil {
		return fmt.Errorf("ntru.Parameters.UnmarshalJSON: %w", err)
	}
	*p = parsed
	return nil
}

// writeInt32 writes one little-endian signed int32.
func writeInt32(buf []byte, off int, v int) int {
	binary.LittleEndian.PutUint32(buf[off:], uint32(int32(v)))
	return off + 4
}

func readInt32(buf []byte, off int) (int, int) {
	return int(int32(binary.LittleEndian.Uint32(buf[off:]))), off + 4
}

// Serialize encodes p as little-endian fixed-width signed int32 fields N,
// q, df, df1, df2, df3, db, dm0, c, minCallsR, minCallsMask, followed by
// hashSeed/sparse/fastFp as single bytes, polyType as an int32, the OID
// bytes as stored (length-prefixed), and finally the digest algorithm name
// as a length-prefixed string. The OID block comes after polyType, not
// directly after the hashSeed byte.
func (p Parameters) Serialize() []byte {
	fixedInts := 11 * 4 // N,q,df,df1,df2,df3,db,dm0,c,minCallsR,minCallsMask
	size := fixedInts + 3 /* bools */ + 4 /* polyType */
	size += 4 + len(p.oid)
	size += 4 + len(p.digestAlgorithm)

	buf := make([]byte, size)
	off := 0
	off = writeInt32(buf, off, p.n)
	off = writeInt32(buf, off, p.q)
	off = writeInt32(buf, off, p.df)
	off = writeInt32(buf, off, p.df1)
	off = writeInt32(buf, off, p.df2)
	off = writeInt32(buf, off, p.df3)
	off = writeInt32(buf, off, p.db)
	off = writeInt32(buf, off, p.dm0)
	off = writeInt32(buf, off, p.c)
	off = writeInt32(buf, off, p.minCallsR)
	off = writeInt32(buf, off, p.minCallsMask)
	buf[off] = boolByte(p.hashSeed)
	off++
	buf[off] = boolByte(p.sparse)
	off++
	buf[off] = boolByte(p.fastFp)
	off++
	off = writeInt32(buf, off, int(p.polyType))
	off = writeInt32(buf, off, len(p.oid))
	off += copy(buf[off:], p.oid)
	off = writeInt32(buf, off, len(p.digestAlgorithm))
	copy(buf[off:], p.digestAlgorithm)

	return buf
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Deserialize decodes a byte slice produced by Serialize, failing with
// ErrEncoding on a truncated or inconsistent buffer. It takes no
// DigestFactory: the stored digest algorithm name is recorded in the
// returned Parameters and is not resolved to a Digest instance.
func Deserialize(data []byte) (Parameters, error) {
	const minLen = 11*4 + 3 + 4 + 4 + 4
	if len(data) < minLen {
		return Parameters{}, fmt.Errorf("ntru.Deserialize: %w: buffer too short (%d bytes)", utils.ErrEncoding, len(data))
	}

	off := 0
	var lit Literal
	lit.N, off = readInt32(data, off)
	lit.Q, off = readInt32(data, off)
	lit.Df, off = readInt32(data, off)
	lit.Df1, off = readInt32(data, off)
	lit.Df2, off = readInt32(data, off)
	lit.Df3, off = readInt32(data, off)
	lit.Db, off = readInt32(data, off)
	lit.Dm0, off = readInt32(data, off)
	lit.C, off = readInt32(data, off)
	lit.MinCallsR, off = readInt32(data, off)
	lit.MinCallsMask, off = readInt32(data, off)

	if off+3 > len(data) {
		return Parameters{}, fmt.Errorf("ntru.Deserialize: %w: buffer truncated before flag bytes", utils.ErrEncoding)
	}
	lit.HashSeed = data[off] != 0
	off++
	lit.Sparse = data[off] != 0
	off++
	lit.FastFp = data[off] != 0
	off++

	var polyTypeInt int
	polyTypeInt, off = readInt32(data, off)
	lit.PolyType = PolyType(polyTypeInt)

	oidLen, off2 := readInt32(data, off)
	off = off2
	if oidLen < 0 || off+oidLen > len(data) {
		return Parameters{}, fmt.Errorf("ntru.Deserialize: %w: invalid OID length %d", utils.ErrEncoding, oidLen)
	}
	lit.OID = make([]byte, oidLen)
	copy(lit.OID, data[off:off+oidLen])
	off += oidLen

	if off+4 > len(data) {
		return Parameters{}, fmt.Errorf("ntru.Deserialize: %w: buffer truncated before digest-name length", utils.ErrEncoding)
	}
	nameLen, off3 := readInt32(data, off)
	off = off3
	if nameLen < 0 || off+nameLen > len(data) {
		return Parameters{}, fmt.Errorf("ntru.Deserialize: %w: invalid digest-name length %d", utils.ErrEncoding, nameLen)
	}
	lit.DigestAlgorithm = string(data[off : off+nameLen])
	off += nameLen

	return NewParametersFromLiteral(lit)
}
