package depth

import (
	"log/slog"

	"github.com/holiman/uint256"
)

const defaultInitialProbe = 1_000_000_000_000_000_000

// DefaultInitialProbe returns one whole unit of an 18-decimal token. Each call
// returns a fresh value.
func DefaultInitialProbe() *uint256.Int {
	return uint256.NewInt(defaultInitialProbe)
}

type options struct {
	probe  *uint256.Int
	logger *slog.Logger
}

// Option tunes a search.
type Option func(*options)

// WithInitialProbe sets the first amount tried by bracketing. A probe that is
// already over the target makes bracketing stop immediately with [0, probe].
func WithInitialProbe(probe *uint256.Int) Option {
	return func(o *options) {
		if probe != nil {
			o.probe = probe.Clone()
		}
	}
}

// WithLogger makes the search log its phase transitions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		probe:  DefaultInitialProbe(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
