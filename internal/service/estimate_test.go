package service

import (
	"context"
	"log/slog"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mud2monarch/liquidity-depth-cli/internal/ethtest"
	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
)

var (
	token0 = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	token1 = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	pool   = common.HexToAddress("0x0000000000000000000000000000000000000abc")
)

func newLoader(t *testing.T, fe *ethtest.Fake) *oracle.Reader {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	return oracle.NewReader(logger, ethtest.NewClient(t, fe))
}

func newEstimateService(t *testing.T, fe *ethtest.Fake) *EstimateService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	return NewEstimateService(logger, newLoader(t, fe))
}

func TestEstimate_Success(t *testing.T) {
	t.Parallel()

	// reserves: 1_000_000 : 2_000_000
	r0, r1 := big.NewInt(1_000_000), big.NewInt(2_000_000)
	amountIn := big.NewInt(1_000)

	svc := newEstimateService(t, ethtest.NewPair(123, pool, token0, token1, r0, r1))

	out, err := svc.Estimate(context.Background(), pool, token0, token1, amountIn)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	// compute expected
	amountInWithFee := new(big.Int).Mul(amountIn, big.NewInt(997))
	numerator := new(big.Int).Mul(amountInWithFee, r1)
	denominator := new(big.Int).Add(new(big.Int).Mul(r0, big.NewInt(1000)), amountInWithFee)
	expected := new(big.Int).Div(numerator, denominator)

	if out.Cmp(expected) != 0 {
		t.Fatalf("unexpected amountOut: got %s want %s", out, expected)
	}
}

func TestEstimate_PairMismatch(t *testing.T) {
	t.Parallel()

	wrong := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	svc := newEstimateService(t, ethtest.NewPair(1, pool, token0, token1, big.NewInt(1), big.NewInt(1)))

	_, err := svc.Estimate(context.Background(), pool, token0, wrong, big.NewInt(1))
	if err == nil || err != oracle.ErrPairMismatch {
		t.Fatalf("expected ErrPairMismatch, got %v", err)
	}
}

func TestEstimate_SameToken(t *testing.T) {
	t.Parallel()

	svc := newEstimateService(t, ethtest.NewPair(1, pool, token0, token0, big.NewInt(1), big.NewInt(1)))

	_, err := svc.Estimate(context.Background(), pool, token0, token0, big.NewInt(1))
	if err == nil || err != oracle.ErrSameToken {
		t.Fatalf("expected ErrSameToken, got %v", err)
	}
}

func TestEstimate_EmptyReserves(t *testing.T) {
	t.Parallel()

	svc := newEstimateService(t, ethtest.NewPair(1, pool, token0, token1, big.NewInt(0), big.NewInt(0)))

	_, err := svc.Estimate(context.Background(), pool, token0, token1, big.NewInt(1))
	if err == nil || err != oracle.ErrEmptyReserves {
		t.Fatalf("expected ErrEmptyReserves, got %v", err)
	}
}
