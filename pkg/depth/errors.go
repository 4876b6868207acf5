package depth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers bad targets, tolerances, probes, token pairs and
	// spot prices that are zero or have a zero denominator.
	ErrInvalidInput = errors.New("depth: invalid input")
	// ErrToleranceUnattainable is returned when bisection narrows the interval
	// to adjacent integers without any trial landing within tolerance.
	ErrToleranceUnattainable = errors.New("depth: tolerance unattainable")
)

// OracleError wraps a failure reported by the quoting oracle. The search
// never retries; the wrapped error is available through errors.Is/As.
type OracleError struct {
	Op     string
	Amount string
	Err    error
}

func (e *OracleError) Error() string {
	if e.Amount == "" {
		return fmt.Sprintf("depth: oracle %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("depth: oracle %s(%s): %v", e.Op, e.Amount, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
