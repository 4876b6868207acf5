package service

import "errors"

var (
	ErrNoLevels      = errors.New("at least one slippage level is required")
	ErrTooManyLevels = errors.New("too many slippage levels")
)

// MaxLevels bounds the concurrent searches of one profile request.
const MaxLevels = 16
