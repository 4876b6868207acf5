package depth

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// Profile runs one independent search per slippage level, concurrently, and
// returns the results in the order of levels. The first failing search
// cancels the rest.
func Profile(ctx context.Context, oracle Oracle, tokenIn, tokenOut common.Address, levels []float64, tolerance float64, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	for i, level := range levels {
		g.Go(func() error {
			res, err := Search(gctx, oracle, Params{
				TokenIn:   tokenIn,
				TokenOut:  tokenOut,
				Slippage:  level,
				Tolerance: tolerance,
			}, opts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
