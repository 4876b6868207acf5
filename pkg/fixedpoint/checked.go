package fixedpoint

import "github.com/holiman/uint256"

// CheckedMul returns x*y or ErrOverflow if the product does not fit in 256 bits.
// The operands are never modified.
func CheckedMul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// CheckedAdd returns x+y or ErrOverflow.
func CheckedAdd(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// CheckedSub returns x-y. Unsigned underflow is reported as ErrOverflow.
func CheckedSub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// AbsSub returns |x-y| without ever underflowing.
func AbsSub(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Sub(y, x)
	}
	return new(uint256.Int).Sub(x, y)
}

// Midpoint returns floor((lo+hi)/2) for lo <= hi without forming lo+hi.
func Midpoint(lo, hi *uint256.Int) *uint256.Int {
	half := new(uint256.Int).Sub(hi, lo)
	half.Rsh(half, 1)
	return half.Add(half, lo)
}
