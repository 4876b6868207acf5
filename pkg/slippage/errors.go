package slippage

import "errors"

var (
	// ErrZeroAmountIn is returned when slippage is evaluated for a zero input.
	ErrZeroAmountIn = errors.New("slippage: amount in must be positive")
	// ErrDivisionByZero is returned when the spot price numerator is zero.
	ErrDivisionByZero = errors.New("slippage: spot price must be positive")
	// ErrTargetRange is returned when a target or tolerance is outside [0, 1).
	ErrTargetRange = errors.New("slippage: value must be in [0, 1)")
)
