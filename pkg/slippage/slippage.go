// Package slippage evaluates the slippage of a trial trade against a spot
// price and tests it against a target, exactly.
package slippage

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/pkg/fixedpoint"
)

// Decimal targets are turned into ratios at one of two scales. IsUnderTarget
// uses the coarse one and IsWithinTolerance the fine one. The two are kept
// apart on purpose: unifying them moves results at tolerance boundaries.
const (
	CoarseScale uint64 = 1_000_000
	FineScale   uint64 = 1_000_000_000
)

// Direction tells whether a trade executed worse than, at, or better than spot.
type Direction int

const (
	Worse Direction = iota - 1
	AtSpot
	Better
)

func (d Direction) String() string {
	switch d {
	case Worse:
		return "worse"
	case Better:
		return "better"
	default:
		return "at_spot"
	}
}

// spotParts splits spot and rejects a zero price.
func spotParts(spot fixedpoint.Ratio) (*uint256.Int, *uint256.Int, error) {
	if !spot.Valid() {
		return nil, nil, fixedpoint.ErrZeroDenominator
	}
	if spot.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	return spot.Num(), spot.Den(), nil
}

// Of returns the magnitude of the slippage of receiving out for in at the
// given spot price (output units per input unit):
//
//	|out - spot*in| / (spot*in) = |out*spot.den - spot.num*in| / (in*spot.num)
//
// The result is not reduced. Use Direction for the sign.
func Of(spot fixedpoint.Ratio, out, in *uint256.Int) (fixedpoint.Ratio, error) {
	num, den, err := parts(spot, out, in)
	if err != nil {
		return fixedpoint.Ratio{}, err
	}
	return fixedpoint.New(fixedpoint.AbsSub(num, den), den)
}

// DirectionOf compares the realized rate out/in to spot.
func DirectionOf(spot fixedpoint.Ratio, out, in *uint256.Int) (Direction, error) {
	realized, expected, err := parts(spot, out, in)
	if err != nil {
		return AtSpot, err
	}
	return Direction(realized.Cmp(expected)), nil
}

// parts returns out*spot.den and spot.num*in.
func parts(spot fixedpoint.Ratio, out, in *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if in == nil || in.IsZero() {
		return nil, nil, ErrZeroAmountIn
	}
	sn, sd, err := spotParts(spot)
	if err != nil {
		return nil, nil, err
	}
	realized, err := fixedpoint.CheckedMul(out, sd)
	if err != nil {
		return nil, nil, err
	}
	expected, err := fixedpoint.CheckedMul(sn, in)
	if err != nil {
		return nil, nil, err
	}
	return realized, expected, nil
}

// IsUnderTarget reports slippage <= target, with target taken at CoarseScale.
func IsUnderTarget(s fixedpoint.Ratio, target float64) (bool, error) {
	t, err := toRatio(target, CoarseScale)
	if err != nil {
		return false, err
	}
	return fixedpoint.LessOrEqual(s, t)
}

// IsWithinTolerance reports |slippage - target| <= tolerance, with both
// decimals taken at FineScale.
func IsWithinTolerance(s fixedpoint.Ratio, target, tolerance float64) (bool, error) {
	t, err := toRatio(target, FineScale)
	if err != nil {
		return false, err
	}
	tol, err := toRatio(tolerance, FineScale)
	if err != nil {
		return false, err
	}
	return within(s, t, tol)
}

func within(s, target, tolerance fixedpoint.Ratio) (bool, error) {
	diff, err := fixedpoint.AbsDiff(s, target)
	if err != nil {
		return false, err
	}
	return fixedpoint.LessOrEqual(diff, tolerance)
}

func toRatio(d float64, scale uint64) (fixedpoint.Ratio, error) {
	if math.IsNaN(d) || d < 0 || d >= 1 {
		return fixedpoint.Ratio{}, ErrTargetRange
	}
	return fixedpoint.FromDecimal(d, scale)
}
