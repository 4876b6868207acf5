// Package uniswapv2 holds the constant-product pair formulas.
package uniswapv2

import "math/big"

// fee: 0.3% => multiplier 997/1000
var (
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)
)

// GetAmountOut mirrors UniswapV2Library.getAmountOut. dst, t1 and t2 are
// caller-owned temporaries so hot loops do not allocate; dst is returned.
func GetAmountOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	// t1 = amountIn * 997
	t1.Mul(amountIn, feeMul)
	// t2 = reserveIn * 1000
	t2.Mul(reserveIn, feeDen)
	// t2 = t2 + t1  (denominator)
	t2.Add(t2, t1)
	// dst = t1 * reserveOut (numerator)
	dst.Mul(t1, reserveOut)
	// dst = dst / t2  (avoid aliasing z==y)
	return dst.Div(dst, t2)
}

// SpotPrice returns the marginal rate of an infinitesimal trade, fee
// included, as num/den output units per input unit:
//
//	d(amountOut)/d(amountIn) at 0 = reserveOut*997 / (reserveIn*1000)
//
// Slippage measured against it is therefore pure price impact.
func SpotPrice(reserveIn, reserveOut *big.Int) (num, den *big.Int) {
	num = new(big.Int).Mul(reserveOut, feeMul)
	den = new(big.Int).Mul(reserveIn, feeDen)
	return num, den
}
