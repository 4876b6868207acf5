package config

import "errors"

// ErrMissingRPCEndpoint indicates that the required ETH_RPC_URL variable is
// not set in the environment.
var ErrMissingRPCEndpoint = errors.New("missing ETH_RPC_URL environment variable")

// ErrInvalidTolerance indicates that DEFAULT_TOLERANCE is not a decimal in [0, 1).
var ErrInvalidTolerance = errors.New("DEFAULT_TOLERANCE must be a decimal in [0, 1)")

// ErrInvalidProbe indicates that INITIAL_PROBE is not a positive base-10 integer.
var ErrInvalidProbe = errors.New("INITIAL_PROBE must be a positive base-10 integer")

// ErrInvalidDuration indicates that a *_TIMEOUT variable is not a positive duration.
var ErrInvalidDuration = errors.New("timeout must be a positive duration such as 10s")
