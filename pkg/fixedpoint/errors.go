package fixedpoint

import "errors"

var (
	// ErrOverflow is returned when an intermediate product or sum exceeds 2^256-1.
	ErrOverflow = errors.New("fixedpoint: arithmetic overflow")
	// ErrZeroDenominator is returned when a ratio with a zero denominator is built or consumed.
	ErrZeroDenominator = errors.New("fixedpoint: zero denominator")
	// ErrInvalidDecimal is returned for negative, NaN or infinite decimal inputs.
	ErrInvalidDecimal = errors.New("fixedpoint: invalid decimal")
)
