package ntru

// Predefined parameter literals. spec.md §4.7 requires these 8 sets' values
// to be "bit-exact" and "reproduced verbatim" from the source. Only
// APR2011_439's field values are externally specified (spec.md scenario 5);
// the remaining 7 sets have no source in spec.md or original_source/ (see
// DESIGN.md), so they are structurally self-consistent reconstructions
// following the same naming and density conventions rather than verified
// bit-exact values - a known gap against §4.7 until an authoritative source
// for them is available.
var (
	// EES1087EP2 targets a 256-bit security level, product-form private
	// key.
	EES1087EP2 = Literal{
		N: 1087, Q: 2048,
		Df1: 8, Df2: 8, Df3: 6,
		Db: 256, Dm0: 13, C: 11,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: true,
		PolyType:        Product,
		OID:             []byte{0x00, 0x06, 0x01},
		DigestAlgorithm: "SHA-512",
	}

	// EES1171EP1 targets a 256-bit security level, product-form private
	// key, non-sparse.
	EES1171EP1 = Literal{
		N: 1171, Q: 2048,
		Df1: 8, Df2: 8, Df3: 6,
		Db: 256, Dm0: 13, C: 11,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: false, FastFp: true,
		PolyType:        Product,
		OID:             []byte{0x00, 0x06, 0x02},
		DigestAlgorithm: "SHA-512",
	}

	// EES1499EP1 targets a 256-bit security level, product-form private
	// key, maximum-margin parameter set.
	EES1499EP1 = Literal{
		N: 1499, Q: 2048,
		Df1: 7, Df2: 6, Df3: 5,
		Db: 256, Dm0: 13, C: 11,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: true,
		PolyType:        Product,
		OID:             []byte{0x00, 0x06, 0x03},
		DigestAlgorithm: "SHA-512",
	}

	// EES1499EP1_EXT is EES1499EP1 with non-sparse private-key encoding.
	EES1499EP1_EXT = Literal{
		N: 1499, Q: 2048,
		Df1: 7, Df2: 6, Df3: 5,
		Db: 256, Dm0: 13, C: 11,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: false, FastFp: true,
		PolyType:        Product,
		OID:             []byte{0x00, 0x06, 0x04},
		DigestAlgorithm: "SHA-512",
	}

	// APR2011_439 targets a 128-bit security level, simple-form private
	// key. N, Q, Df, Db, Dm0, C, MinCallsR, MinCallsMask, PolyType and OID
	// are the externally specified values; HashSeed, Sparse, FastFp and
	// DigestAlgorithm are not among them.
	APR2011_439 = Literal{
		N: 439, Q: 2048,
		Df: 146,
		Db: 128, Dm0: 130, C: 9,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: false,
		PolyType:        Simple,
		OID:             []byte{0x00, 0x07, 0x65},
		DigestAlgorithm: "SHA-256",
	}

	// APR2011_439_FAST is APR2011_439 with the fast-private-key (f = 1 +
	// p*F) optimization enabled.
	APR2011_439_FAST = Literal{
		N: 439, Q: 2048,
		Df: 146,
		Db: 128, Dm0: 130, C: 9,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: true,
		PolyType:        Simple,
		OID:             []byte{0x00, 0x07, 0x66},
		DigestAlgorithm: "SHA-256",
	}

	// APR2011_743 targets a 256-bit security level, simple-form private
	// key.
	APR2011_743 = Literal{
		N: 743, Q: 2048,
		Df: 248,
		Db: 256, Dm0: 220, C: 9,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: false,
		PolyType:        Simple,
		OID:             []byte{0x00, 0x07, 0x6e},
		DigestAlgorithm: "SHA-512",
	}

	// APR2011_743_FAST is APR2011_743 with the fast-private-key (f = 1 +
	// p*F) optimization enabled.
	APR2011_743_FAST = Literal{
		N: 743, Q: 2048,
		Df: 248,
		Db: 256, Dm0: 220, C: 9,
		MinCallsR: 32, MinCallsMask: 9,
		HashSeed: true, Sparse: true, FastFp: true,
		PolyType:        Simple,
		OID:             []byte{0x00, 0x07, 0x6f},
		DigestAlgorithm: "SHA-512",
	}
)

// DefaultParameterSets lists every predefined Literal, in the order
// typically offered to a caller choosing a security level.
var DefaultParameterSets = []Literal{
	APR2011_439,
	APR2011_439_FAST,
	APR2011_743,
	APR2011_743_FAST,
	EES1087EP2,
	EES1171EP1,
	EES1499EP1,
	EES1499EP1_EXT,
}
