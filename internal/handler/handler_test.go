package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"github.com/holiman/uint256"

	"github.com/mud2monarch/liquidity-depth-cli/internal/ethtest"
	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
	"github.com/mud2monarch/liquidity-depth-cli/internal/service"
)

var (
	token0 = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	token1 = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	pool   = common.HexToAddress("0x0000000000000000000000000000000000000abc")
)

func newApp(t *testing.T, fe *ethtest.Fake) *fiber.App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := oracle.NewReader(logger, ethtest.NewClient(t, fe))

	app := fiber.New()
	app.Get("/estimate", NewEstimateHandler(logger, service.NewEstimateService(logger, reader)).Handle())
	app.Get("/depth", NewDepthHandler(logger, service.NewDepthService(logger, reader, 5*time.Second), 0.0001, uint256.NewInt(1_000_000_000_000_000_000)).Handle())
	return app
}

func ethUsdcPair() *ethtest.Fake {
	rEth, _ := new(big.Int).SetString("1000000000000000000000", 10)
	return ethtest.NewPair(42, pool, token0, token1, rEth, big.NewInt(2_700_000_000_000))
}

func TestEstimateHandler_OK(t *testing.T) {
	fe := ethtest.NewPair(42, pool, token0, token1, big.NewInt(1_000_000), big.NewInt(2_000_000))
	app := newApp(t, fe)

	req := httptest.NewRequest(http.MethodGet, "/estimate?pool="+pool.Hex()+"&src="+token0.Hex()+"&dst="+token1.Hex()+"&src_amount=1000", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "1992" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestEstimateHandler_Validation(t *testing.T) {
	app := newApp(t, &ethtest.Fake{BlockNumberValue: 1})

	cases := []struct {
		name  string
		query string
	}{
		{"missing_params", ""},
		{"bad_address", "?pool=0x12&src=" + token0.Hex() + "&dst=" + token1.Hex() + "&src_amount=1"},
		{"same_tokens", "?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token0.Hex() + "&src_amount=1"},
		{"zero_amount", "?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token1.Hex() + "&src_amount=0"},
		{"bad_amount", "?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token1.Hex() + "&src_amount=1e3"},
		{"unknown_pool", "?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token1.Hex() + "&src_amount=1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/estimate"+tc.query, nil))
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestDepthHandler_OK(t *testing.T) {
	app := newApp(t, ethUsdcPair())

	url := "/depth?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token1.Hex() + "&slippage=0.01,0.02"
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body DepthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Block != 42 || len(body.Levels) != 2 {
		t.Fatalf("unexpected response: %+v", body)
	}
	if body.Tolerance != 0.0001 {
		t.Fatalf("default tolerance not applied: %v", body.Tolerance)
	}
	for _, lvl := range body.Levels {
		if diff := lvl.Realized - lvl.Slippage; diff > 0.0001 || diff < -0.0001 {
			t.Fatalf("level %v realized %v", lvl.Slippage, lvl.Realized)
		}
		if lvl.BracketSteps == 0 {
			t.Fatalf("level %v: no bracketing steps reported", lvl.Slippage)
		}
	}
}

func TestDepthHandler_Validation(t *testing.T) {
	app := newApp(t, ethUsdcPair())
	base := "/depth?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + token1.Hex()

	cases := []struct {
		name   string
		url    string
		status int
	}{
		{"missing_slippage", base, http.StatusBadRequest},
		{"slippage_not_fraction", base + "&slippage=2", http.StatusBadRequest},
		{"slippage_garbage", base + "&slippage=abc", http.StatusBadRequest},
		{"tolerance_negative", base + "&slippage=0.02&tolerance=-0.1", http.StatusBadRequest},
		{"probe_zero", base + "&slippage=0.02&probe=0", http.StatusBadRequest},
		{"wrong_pair", "/depth?pool=" + pool.Hex() + "&src=" + token0.Hex() + "&dst=" + pool.Hex() + "&slippage=0.02", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.url, nil))
			if err != nil {
				t.Fatalf("app.Test error: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
		})
	}
}

func TestParseLevels(t *testing.T) {
	levels, err := parseLevels("0.01, 0.02,0.05")
	if err != nil {
		t.Fatalf("parseLevels error: %v", err)
	}
	want := []float64{0.01, 0.02, 0.05}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("level %d: got %v want %v", i, levels[i], want[i])
		}
	}

	many := "0.01"
	for i := 0; i < service.MaxLevels; i++ {
		many += ",0.01"
	}
	if _, err := parseLevels(many); err != ErrTooManyLevels {
		t.Fatalf("expected ErrTooManyLevels, got %v", err)
	}
}
