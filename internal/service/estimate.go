package service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
)

// EstimateService provides Uniswap V2 output amount estimations by reading
// on-chain pair storage directly.
type EstimateService struct {
	BaseService
	pools PoolLoader
}

// NewEstimateService constructs an EstimateService using the provided logger
// and pair loader.
func NewEstimateService(logger *slog.Logger, pools PoolLoader) *EstimateService {
	return &EstimateService{
		BaseService: BaseService{logger: logger},
		pools:       pools,
	}
}

// Estimate computes the expected output amount for swapping amountIn of src to
// dst in the provided pool at the latest block.
func (e *EstimateService) Estimate(ctx context.Context, pool, src, dst common.Address, amountIn *big.Int) (*big.Int, error) {
	e.logger.Debug("estimating swap", "pool", pool.Hex(), "src", src.Hex(), "dst", dst.Hex(), "in", amountIn.String())

	if src == dst {
		return nil, oracle.ErrSameToken
	}

	p, err := e.pools.LoadPool(ctx, pool)
	if err != nil {
		return nil, err
	}

	out, err := p.AmountOut(src, dst, amountIn)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("amount out computed", "block", p.Block, "out", out.String())
	return out, nil
}
