package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
)

type Config struct {
	Addr        string
	RPCEndpoint string
	LogLevel    string
	LogFormat   string

	// DefaultTolerance is used by /depth when the request has none.
	DefaultTolerance float64
	// InitialProbe is the first bracketing amount, in the input token's
	// smallest unit.
	InitialProbe  *uint256.Int
	SearchTimeout time.Duration
	DialTimeout   time.Duration
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		return nil, ErrMissingRPCEndpoint
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	tolerance := 0.0001
	if v := os.Getenv("DEFAULT_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f >= 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTolerance, v)
		}
		tolerance = f
	}

	probe := depth.DefaultInitialProbe()
	if v := os.Getenv("INITIAL_PROBE"); v != "" {
		p, err := uint256.FromDecimal(v)
		if err != nil || p.IsZero() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProbe, v)
		}
		probe = p
	}

	searchTimeout, err := durationEnv("SEARCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	dialTimeout, err := durationEnv("DIAL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:             addr,
		RPCEndpoint:      rpcURL,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		DefaultTolerance: tolerance,
		InitialProbe:     probe,
		SearchTimeout:    searchTimeout,
		DialTimeout:      dialTimeout,
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: %w: %q", key, ErrInvalidDuration, v)
	}
	return d, nil
}
