package oracle

import "errors"

var (
	ErrSameToken      = errors.New("src and dst are equal")
	ErrPairMismatch   = errors.New("pair does not match src/dst")
	ErrEmptyReserves  = errors.New("empty reserves")
	ErrAmountTooLarge = errors.New("amount out does not fit in 256 bits")
)
