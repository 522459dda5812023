package utils

import (
	"math"
	"math/big"
)

// MulDivFloor computes floor(a*b/c) without intermediate overflow. a, b >= 0 and c > 0.
// ok is false when the result does not fit in int64.
func MulDivFloor(a, b, c int64) (res int64, ok bool) {
	var r big.Int
	r.Mul(big.NewInt(a), big.NewInt(b))
	r.Quo(&r, big.NewInt(c))
	if !r.IsInt64() {
		return math.MaxInt64, false
	}
	return r.Int64(), true
}

// MulDivCeil computes ceil(a*b/c) for a, b >= 0 and c > 0.
func MulDivCeil(a, b, c int64) (res int64, ok bool) {
	var r, m big.Int
	r.Mul(big.NewInt(a), big.NewInt(b))
	r.QuoRem(&r, big.NewInt(c), &m)
	if m.Sign() != 0 {
		r.Add(&r, big.NewInt(1))
	}
	if !r.IsInt64() {
		return math.MaxInt64, false
	}
	return r.Int64(), true
}

// CmpProducts compares a*b with c*d.
func CmpProducts(a, b, c, d int64) int {
	var l, r big.Int
	l.Mul(big.NewInt(a), big.NewInt(b))
	r.Mul(big.NewInt(c), big.NewInt(d))
	return l.Cmp(&r)
}
