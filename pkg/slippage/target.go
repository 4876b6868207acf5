package slippage

import "github.com/mud2monarch/liquidity-depth-cli/pkg/fixedpoint"

// Target is a slippage target and tolerance converted once into ratios.
type Target struct {
	Slippage  float64
	Tolerance float64

	coarse    fixedpoint.Ratio
	fine      fixedpoint.Ratio
	tolerance fixedpoint.Ratio
}

// NewTarget validates that both values lie in [0, 1) and converts them.
func NewTarget(target, tolerance float64) (Target, error) {
	coarse, err := toRatio(target, CoarseScale)
	if err != nil {
		return Target{}, err
	}
	fine, err := toRatio(target, FineScale)
	if err != nil {
		return Target{}, err
	}
	tol, err := toRatio(tolerance, FineScale)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Slippage:  target,
		Tolerance: tolerance,
		coarse:    coarse,
		fine:      fine,
		tolerance: tol,
	}, nil
}

// Under is IsUnderTarget against the pre-converted coarse target.
func (t Target) Under(s fixedpoint.Ratio) (bool, error) {
	return fixedpoint.LessOrEqual(s, t.coarse)
}

// Within is IsWithinTolerance against the pre-converted fine values.
func (t Target) Within(s fixedpoint.Ratio) (bool, error) {
	return within(s, t.fine, t.tolerance)
}

// Cmp orders s against the fine target without any tolerance.
func (t Target) Cmp(s fixedpoint.Ratio) (int, error) {
	return fixedpoint.Cmp(s, t.fine)
}

// Ratio returns the fine-scale target.
func (t Target) Ratio() fixedpoint.Ratio {
	return t.fine
}

// IsZero reports whether the target rounds to zero at the fine scale.
func (t Target) IsZero() bool {
	return t.fine.IsZero()
}
