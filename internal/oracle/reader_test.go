package oracle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/internal/ethtest"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
)

var (
	token0 = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	token1 = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	pool   = common.HexToAddress("0x0000000000000000000000000000000000000abc")
)

func newReader(t *testing.T, fe *ethtest.Fake) *Reader {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReader(logger, ethtest.NewClient(t, fe))
}

func TestLoadPool(t *testing.T) {
	t.Parallel()

	r0, _ := new(big.Int).SetString("5192296858534827628530496329220095", 10) // 2^112-1
	r1 := big.NewInt(2_000_000)
	fe := ethtest.NewPair(123, pool, token0, token1, r0, r1)

	p, err := newReader(t, fe).LoadPool(context.Background(), pool)
	if err != nil {
		t.Fatalf("LoadPool error: %v", err)
	}
	if p.Block != 123 || p.Address != pool {
		t.Fatalf("unexpected snapshot: block=%d address=%s", p.Block, p.Address.Hex())
	}
	if p.Token0 != token0 || p.Token1 != token1 {
		t.Fatalf("unexpected tokens: %s %s", p.Token0.Hex(), p.Token1.Hex())
	}
	if p.Reserve0.Cmp(r0) != 0 || p.Reserve1.Cmp(r1) != 0 {
		t.Fatalf("unexpected reserves: %s %s", p.Reserve0, p.Reserve1)
	}
}

func TestLoadPool_RPCError(t *testing.T) {
	t.Parallel()

	fe := &ethtest.Fake{Err: ethtest.ErrUnavailable}
	_, err := newReader(t, fe).LoadPool(context.Background(), pool)
	if err == nil {
		t.Fatalf("expected error")
	}
}

// A loaded pair drives a full search without further RPC traffic.
func TestPool_SearchAgainstSnapshot(t *testing.T) {
	t.Parallel()

	// 1000 ETH : 2_700_000 USDC
	rEth, _ := new(big.Int).SetString("1000000000000000000000", 10)
	rUsdc := big.NewInt(2_700_000_000_000)
	fe := ethtest.NewPair(1, pool, token0, token1, rEth, rUsdc)

	p, err := newReader(t, fe).LoadPool(context.Background(), pool)
	if err != nil {
		t.Fatalf("LoadPool error: %v", err)
	}
	fe.Err = errors.New("no rpc during search")

	res, err := depth.Search(context.Background(), p, depth.Params{
		TokenIn:   token0,
		TokenOut:  token1,
		Slippage:  0.02,
		Tolerance: 0.0001,
	})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	// price impact of x on reserve R with fee f=0.997 is about f*x/(R+f*x)
	lo := uint256.MustFromDecimal("20000000000000000000")
	hi := uint256.MustFromDecimal("21000000000000000000")
	if res.AmountIn.Lt(lo) || res.AmountIn.Gt(hi) {
		t.Fatalf("amountIn %s outside [%s, %s]", res.AmountIn.Dec(), lo.Dec(), hi.Dec())
	}
}
