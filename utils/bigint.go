package utils

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// BitLength returns a high-precision estimate of log2(|x|), computed via
// bigfloat.Log2 on x converted to an arbitrary-precision float rather than
// the coarse big.Int.BitLen (which only gives the ceiling of the true bit
// length). No other package of this module calls it.
func BitLength(x *big.Int) float64 {
	if x.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetPrec(x.BitLen() + 64).SetInt(new(big.Int).Abs(x))
	return bigfloat.Log2(f)
}

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo(x *big.Int) bool {
	if x.Sign() <= 0 {
		return false
	}
	one := big.NewInt(1)
	xMinus1 := new(big.Int).Sub(x, one)
	return new(big.Int).And(x, xMinus1).Sign() == 0
}

// ToIntArrayModQ reduces bigInteger modulo q and returns the result as a
// big.Int.
//
// spec.md §9 flags the source's "toIntArrayModQ" as computing
// `big_integer % int(q)` - i.e. narrowing q to a machine int before the
// modular reduction. For any q that does not fit in an int (NTRU's q is a
// small power of two in all predefined parameter sets, but the API accepts
// an arbitrary *big.Int modulus), that narrowing silently reduces modulo a
// truncated or overflowed value instead of the intended modulus. This
// implementation performs the reduction on the full-precision big.Int
// modulus, which is the probable original intent flagged in the spec.
func ToIntArrayModQ(bigInteger *big.Int, q *big.Int) *big.Int {
	r := new(big.Int).Mod(bigInteger, q)
	return r
}

// CloneBigInt returns a fresh copy of x.
func CloneBigInt(x *big.Int) *big.Int {
	return new(big.Int).Set(x)
}
