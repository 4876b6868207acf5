// Package fixedpoint implements exact non-negative rationals over 256-bit
// unsigned integers. Ratios are never reduced; every comparison is done by
// cross multiplication with overflow checks, so no division or rounding ever
// influences an ordering decision.
package fixedpoint

import (
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Ratio is an immutable num/den pair. The zero value is invalid and is
// rejected by every operation with ErrZeroDenominator.
type Ratio struct {
	num *uint256.Int
	den *uint256.Int
}

// New copies num and den into a Ratio. den must be non-zero.
func New(num, den *uint256.Int) (Ratio, error) {
	if num == nil || den == nil || den.IsZero() {
		return Ratio{}, ErrZeroDenominator
	}
	return Ratio{num: num.Clone(), den: den.Clone()}, nil
}

// MustNew is like New but panics on a zero denominator. Intended for constants.
func MustNew(num, den *uint256.Int) Ratio {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromUint64 builds num/den from machine integers.
func FromUint64(num, den uint64) (Ratio, error) {
	return New(uint256.NewInt(num), uint256.NewInt(den))
}

// FromDecimal converts d to (round(d*scale), scale). Rounding is half away
// from zero and is performed in decimal arithmetic, so 0.0001 at scale 1e9 is
// exactly 100000/1e9. The result cannot resolve differences finer than 1/scale.
func FromDecimal(d float64, scale uint64) (Ratio, error) {
	if scale == 0 {
		return Ratio{}, ErrZeroDenominator
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return Ratio{}, ErrInvalidDecimal
	}
	scaled := decimal.NewFromFloat(d).Mul(decimal.NewFromBigInt(new(big.Int).SetUint64(scale), 0)).Round(0)
	num, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return Ratio{}, ErrOverflow
	}
	return New(num, uint256.NewInt(scale))
}

// Num returns a copy of the numerator.
func (r Ratio) Num() *uint256.Int {
	if r.num == nil {
		return new(uint256.Int)
	}
	return r.num.Clone()
}

// Den returns a copy of the denominator.
func (r Ratio) Den() *uint256.Int {
	if r.den == nil {
		return new(uint256.Int)
	}
	return r.den.Clone()
}

// IsZero reports whether the ratio represents zero.
func (r Ratio) IsZero() bool {
	return r.num == nil || r.num.IsZero()
}

// Valid reports whether the ratio has a non-zero denominator.
func (r Ratio) Valid() bool {
	return r.den != nil && !r.den.IsZero()
}

// Rat returns the value as a math/big rational. Display and tests only.
func (r Ratio) Rat() *big.Rat {
	if !r.Valid() {
		return new(big.Rat)
	}
	return new(big.Rat).SetFrac(r.num.ToBig(), r.den.ToBig())
}

// Float64 is a lossy view for logging and JSON output. Never compare with it.
func (r Ratio) Float64() float64 {
	f, _ := r.Rat().Float64()
	return f
}

func (r Ratio) String() string {
	if !r.Valid() {
		return "<invalid>"
	}
	return r.num.Dec() + "/" + r.den.Dec()
}

// crossProducts returns a.num*b.den and b.num*a.den.
func crossProducts(a, b Ratio) (*uint256.Int, *uint256.Int, error) {
	if !a.Valid() || !b.Valid() {
		return nil, nil, ErrZeroDenominator
	}
	left, err := CheckedMul(a.num, b.den)
	if err != nil {
		return nil, nil, err
	}
	right, err := CheckedMul(b.num, a.den)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Cmp returns -1, 0 or +1 as a <, ==, > b.
func Cmp(a, b Ratio) (int, error) {
	left, right, err := crossProducts(a, b)
	if err != nil {
		return 0, err
	}
	return left.Cmp(right), nil
}

// LessOrEqual reports a <= b.
func LessOrEqual(a, b Ratio) (bool, error) {
	c, err := Cmp(a, b)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}

// Equal reports whether a and b denote the same rational, e.g. 1/2 == 2/4.
func Equal(a, b Ratio) (bool, error) {
	c, err := Cmp(a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// AbsDiff returns |a-b| over the common denominator a.den*b.den.
func AbsDiff(a, b Ratio) (Ratio, error) {
	left, right, err := crossProducts(a, b)
	if err != nil {
		return Ratio{}, err
	}
	den, err := CheckedMul(a.den, b.den)
	if err != nil {
		return Ratio{}, err
	}
	return Ratio{num: AbsSub(left, right), den: den}, nil
}
