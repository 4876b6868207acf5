package oracle

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/pkg/fixedpoint"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/uniswapv2"
)

// Pool is a Uniswap V2 pair frozen at one block. It implements depth.Oracle
// without further RPC calls, so every trial of a search, and every search of
// a profile, prices against the same reserves. Safe for concurrent use.
type Pool struct {
	Address  common.Address
	Block    uint64
	Token0   common.Address
	Token1   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// reserves orients the pair for a src -> dst swap.
func (p *Pool) reserves(src, dst common.Address) (reserveIn, reserveOut *big.Int, err error) {
	if src == dst {
		return nil, nil, ErrSameToken
	}
	switch {
	case src == p.Token0 && dst == p.Token1:
		reserveIn, reserveOut = p.Reserve0, p.Reserve1
	case src == p.Token1 && dst == p.Token0:
		reserveIn, reserveOut = p.Reserve1, p.Reserve0
	default:
		return nil, nil, ErrPairMismatch
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, nil, ErrEmptyReserves
	}
	return reserveIn, reserveOut, nil
}

// AmountOut applies the Uniswap V2 formula to amountIn.
func (p *Pool) AmountOut(src, dst common.Address, amountIn *big.Int) (*big.Int, error) {
	reserveIn, reserveOut, err := p.reserves(src, dst)
	if err != nil {
		return nil, err
	}
	var outAmt, tmp1, tmp2 big.Int
	return new(big.Int).Set(uniswapv2.GetAmountOut(&outAmt, &tmp1, &tmp2, amountIn, reserveIn, reserveOut)), nil
}

// Quote implements depth.Oracle.
func (p *Pool) Quote(_ context.Context, amountIn *uint256.Int, src, dst common.Address) (*uint256.Int, error) {
	out, err := p.AmountOut(src, dst, amountIn.ToBig())
	if err != nil {
		return nil, err
	}
	v, overflow := uint256.FromBig(out)
	if overflow {
		return nil, ErrAmountTooLarge
	}
	return v, nil
}

// SpotPrice implements depth.Oracle with the fee-inclusive marginal rate.
func (p *Pool) SpotPrice(_ context.Context, src, dst common.Address) (fixedpoint.Ratio, error) {
	reserveIn, reserveOut, err := p.reserves(src, dst)
	if err != nil {
		return fixedpoint.Ratio{}, err
	}
	n, d := uniswapv2.SpotPrice(reserveIn, reserveOut)
	num, overflow := uint256.FromBig(n)
	if overflow {
		return fixedpoint.Ratio{}, fixedpoint.ErrOverflow
	}
	den, overflow := uint256.FromBig(d)
	if overflow {
		return fixedpoint.Ratio{}, fixedpoint.ErrOverflow
	}
	return fixedpoint.New(num, den)
}
