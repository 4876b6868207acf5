package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
)

// DepthService answers "how much src can be sold into pool before the price
// moves by N%" for one or more levels against a single pool snapshot.
type DepthService struct {
	BaseService
	pools   PoolLoader
	timeout time.Duration
}

// NewDepthService constructs a DepthService. A zero timeout disables the
// per-request deadline.
func NewDepthService(logger *slog.Logger, pools PoolLoader, timeout time.Duration) *DepthService {
	return &DepthService{
		BaseService: BaseService{logger: logger},
		pools:       pools,
		timeout:     timeout,
	}
}

// DepthRequest selects a pool, a direction and the slippage levels to solve.
type DepthRequest struct {
	Pool      common.Address
	Src       common.Address
	Dst       common.Address
	Levels    []float64
	Tolerance float64
	Probe     *uint256.Int
}

// DepthReport holds one search result per requested level, in request order.
type DepthReport struct {
	Pool    common.Address
	Block   uint64
	Src     common.Address
	Dst     common.Address
	Results []*depth.Result
}

// Depth loads the pool once and runs the searches concurrently on that snapshot.
func (d *DepthService) Depth(ctx context.Context, req DepthRequest) (*DepthReport, error) {
	if len(req.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if len(req.Levels) > MaxLevels {
		return nil, ErrTooManyLevels
	}
	if req.Src == req.Dst {
		return nil, oracle.ErrSameToken
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	p, err := d.pools.LoadPool(ctx, req.Pool)
	if err != nil {
		return nil, err
	}

	opts := []depth.Option{depth.WithLogger(d.logger)}
	if req.Probe != nil {
		opts = append(opts, depth.WithInitialProbe(req.Probe))
	}

	start := time.Now()
	results, err := depth.Profile(ctx, p, req.Src, req.Dst, req.Levels, req.Tolerance, opts...)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		d.logger.Debug("depth level solved", "pool", req.Pool.Hex(), "block", p.Block,
			"slippage", req.Levels[i], "in", res.AmountIn.Dec(), "out", res.AmountOut.Dec(),
			"bracketSteps", res.BracketSteps, "bisectSteps", res.BisectSteps)
	}
	d.logger.Info("depth computed", "pool", req.Pool.Hex(), "block", p.Block, "levels", len(results), "elapsed", time.Since(start))

	return &DepthReport{
		Pool:    req.Pool,
		Block:   p.Block,
		Src:     req.Src,
		Dst:     req.Dst,
		Results: results,
	}, nil
}
