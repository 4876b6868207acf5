// Package depth finds the input amount that moves a pool's execution price
// by a target slippage. It brackets the answer by doubling a probe amount and
// then bisects, asking an Oracle for one quote per step.
//
// The oracle's output is assumed to grow monotonically and concavely with the
// input. If it does not, the search may return an arbitrary bound.
package depth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/pkg/fixedpoint"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/slippage"
)

// Oracle quotes trades on one venue. Implementations must tolerate
// concurrent calls when used with Profile.
type Oracle interface {
	Quote(ctx context.Context, amountIn *uint256.Int, tokenIn, tokenOut common.Address) (*uint256.Int, error)
	SpotPrice(ctx context.Context, tokenIn, tokenOut common.Address) (fixedpoint.Ratio, error)
}

// Params describes one search.
type Params struct {
	TokenIn   common.Address
	TokenOut  common.Address
	Slippage  float64
	Tolerance float64
}

// Result is the accepted trial and how the search got there.
type Result struct {
	AmountIn     *uint256.Int
	AmountOut    *uint256.Int
	Slippage     fixedpoint.Ratio
	Spot         fixedpoint.Ratio
	BracketSteps int
	BisectSteps  int
}

type phase int

const (
	phaseBracketing phase = iota
	phaseBisecting
	phaseDone
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseBracketing:
		return "bracketing"
	case phaseBisecting:
		return "bisecting"
	case phaseDone:
		return "done"
	default:
		return "failed"
	}
}

var zeroSlippage = fixedpoint.MustNew(new(uint256.Int), uint256.NewInt(1))

// evaluation is one quoted trial.
type evaluation struct {
	in   *uint256.Int
	out  *uint256.Int
	slip fixedpoint.Ratio
}

type searcher struct {
	oracle Oracle
	params Params
	target slippage.Target
	spot   fixedpoint.Ratio
	logger *slog.Logger

	phase    phase
	low      *uint256.Int
	high     *uint256.Int
	trial    *uint256.Int
	lowEval  *evaluation
	highEval *evaluation
	accepted *evaluation
	err      error

	bracketSteps int
	bisectSteps  int
}

// FindInputForSlippage returns the input amount of tokenIn whose slippage
// against the oracle's spot price is within tolerance of target.
func FindInputForSlippage(ctx context.Context, target, tolerance float64, tokenIn, tokenOut common.Address, oracle Oracle, opts ...Option) (*uint256.Int, error) {
	res, err := Search(ctx, oracle, Params{
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		Slippage:  target,
		Tolerance: tolerance,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return res.AmountIn, nil
}

// Search runs bracketing then bisection. The spot price is read once, up
// front; every later step issues exactly one Quote.
//
// A quote better than spot counts as zero slippage. With a zero target the
// search keeps bisecting after a trial is within tolerance and returns the
// smallest such input above the last bracketing low.
func Search(ctx context.Context, oracle Oracle, p Params, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	if oracle == nil {
		return nil, fmt.Errorf("%w: nil oracle", ErrInvalidInput)
	}
	if p.TokenIn == p.TokenOut {
		return nil, fmt.Errorf("%w: tokenIn equals tokenOut", ErrInvalidInput)
	}
	if o.probe.IsZero() {
		return nil, fmt.Errorf("%w: initial probe must be positive", ErrInvalidInput)
	}
	target, err := slippage.NewTarget(p.Slippage, p.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	spot, err := oracle.SpotPrice(ctx, p.TokenIn, p.TokenOut)
	if err != nil {
		return nil, &OracleError{Op: "spot price", Err: err}
	}
	if !spot.Valid() || spot.IsZero() {
		return nil, fmt.Errorf("%w: spot price %s", ErrInvalidInput, spot)
	}

	s := &searcher{
		oracle: oracle,
		params: p,
		target: target,
		spot:   spot,
		logger: o.logger.With("tokenIn", p.TokenIn.Hex(), "tokenOut", p.TokenOut.Hex(), "target", p.Slippage),
		phase:  phaseBracketing,
		low:    new(uint256.Int),
		high:   o.probe.Clone(),
		trial:  o.probe.Clone(),
	}
	s.logger.Debug("search started", "spot", spot.String(), "probe", o.probe.Dec())

	for s.phase != phaseDone && s.phase != phaseFailed {
		if err := ctx.Err(); err != nil {
			s.fail(err)
			break
		}
		s.step(ctx)
	}

	if s.phase == phaseFailed {
		return nil, s.err
	}
	return &Result{
		AmountIn:     s.accepted.in,
		AmountOut:    s.accepted.out,
		Slippage:     s.accepted.slip,
		Spot:         s.spot,
		BracketSteps: s.bracketSteps,
		BisectSteps:  s.bisectSteps,
	}, nil
}

func (s *searcher) step(ctx context.Context) {
	switch s.phase {
	case phaseBracketing:
		s.bracket(ctx)
	case phaseBisecting:
		s.bisect(ctx)
	}
}

// bracket doubles the trial until its slippage is over the coarse target.
func (s *searcher) bracket(ctx context.Context) {
	ev, err := s.evaluate(ctx, s.trial)
	if err != nil {
		s.fail(err)
		return
	}
	s.bracketSteps++

	under, err := s.target.Under(ev.slip)
	if err != nil {
		s.fail(err)
		return
	}
	if !under {
		s.high, s.highEval = ev.in, ev
		s.transition(phaseBisecting)
		s.trial = fixedpoint.Midpoint(s.low, s.high)
		return
	}

	s.low, s.lowEval = ev.in, ev
	next, err := fixedpoint.CheckedAdd(s.trial, s.trial)
	if err != nil {
		s.fail(fmt.Errorf("doubling probe %s: %w", s.trial.Dec(), err))
		return
	}
	s.trial = next
}

// bisect halves [low, high] until a trial lands within tolerance.
func (s *searcher) bisect(ctx context.Context) {
	if s.exhausted() {
		s.settle()
		return
	}

	ev, err := s.evaluate(ctx, s.trial)
	if err != nil {
		s.fail(err)
		return
	}
	s.bisectSteps++

	ok, err := s.target.Within(ev.slip)
	if err != nil {
		s.fail(err)
		return
	}
	if ok && s.target.IsZero() {
		// any smaller input is at least as close to zero, so keep going down
		s.high, s.highEval = ev.in, ev
		s.trial = fixedpoint.Midpoint(s.low, s.high)
		return
	}
	if ok {
		s.accept(ev)
		return
	}

	c, err := s.target.Cmp(ev.slip)
	if err != nil {
		s.fail(err)
		return
	}
	switch {
	case c < 0:
		s.low, s.lowEval = ev.in, ev
	case c > 0:
		s.high, s.highEval = ev.in, ev
	default:
		// unreachable while tolerance >= 0: Within accepts equality first
		s.accept(ev)
		return
	}
	s.trial = fixedpoint.Midpoint(s.low, s.high)
}

func (s *searcher) exhausted() bool {
	gap := new(uint256.Int).Sub(s.high, s.low)
	return gap.LtUint64(2)
}

// settle runs once the interval holds no untried integer. The bounds have
// already been quoted, so the smaller one within tolerance is returned.
func (s *searcher) settle() {
	for _, ev := range []*evaluation{s.lowEval, s.highEval} {
		if ev == nil {
			continue
		}
		ok, err := s.target.Within(ev.slip)
		if err != nil {
			s.fail(err)
			return
		}
		if ok {
			s.accept(ev)
			return
		}
	}
	s.fail(fmt.Errorf("%w: interval [%s, %s] after %d steps", ErrToleranceUnattainable, s.low.Dec(), s.high.Dec(), s.bisectSteps))
}

func (s *searcher) evaluate(ctx context.Context, amountIn *uint256.Int) (*evaluation, error) {
	in := amountIn.Clone()
	out, err := s.oracle.Quote(ctx, in.Clone(), s.params.TokenIn, s.params.TokenOut)
	if err != nil {
		return nil, &OracleError{Op: "quote", Amount: in.Dec(), Err: err}
	}
	if out == nil {
		return nil, &OracleError{Op: "quote", Amount: in.Dec(), Err: errors.New("nil amount out")}
	}
	slip, err := slippage.Of(s.spot, out, in)
	if err != nil {
		return nil, fmt.Errorf("slippage at %s: %w", in.Dec(), err)
	}
	dir, err := slippage.DirectionOf(s.spot, out, in)
	if err != nil {
		return nil, fmt.Errorf("slippage at %s: %w", in.Dec(), err)
	}
	if dir == slippage.Better {
		slip = zeroSlippage
	}
	s.logger.Debug("trial quoted", "phase", s.phase.String(), "in", in.Dec(), "out", out.Dec(), "slippage", slip.Float64())
	return &evaluation{in: in, out: out.Clone(), slip: slip}, nil
}

func (s *searcher) accept(ev *evaluation) {
	s.accepted = ev
	s.transition(phaseDone)
}

func (s *searcher) fail(err error) {
	s.err = err
	s.transition(phaseFailed)
}

func (s *searcher) transition(next phase) {
	s.logger.Debug("search phase", "from", s.phase.String(), "to", next.String(),
		"low", s.low.Dec(), "high", s.high.Dec(), "bracketSteps", s.bracketSteps, "bisectSteps", s.bisectSteps)
	s.phase = next
}
