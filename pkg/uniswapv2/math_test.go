package uniswapv2

import (
	"math/big"
	"testing"
)

func TestGetAmountOut(t *testing.T) {
	// Example: reserves 1000000 : 1000000, amountIn 1000
	rIn := big.NewInt(1_000_000)
	rOut := big.NewInt(1_000_000)
	amountIn := big.NewInt(1_000)

	// dst/t1/t2 are re-used temporaries
	var dst, t1, t2 big.Int
	out := GetAmountOut(&dst, &t1, &t2, amountIn, rIn, rOut)

	// compute expected using same formula to assert determinism and non-zero
	amountInWithFee := new(big.Int).Mul(amountIn, big.NewInt(997))
	numerator := new(big.Int).Mul(amountInWithFee, rOut)
	denominator := new(big.Int).Mul(rIn, big.NewInt(1000))
	denominator.Add(denominator, amountInWithFee)
	expected := new(big.Int).Div(numerator, denominator)

	if out.Cmp(expected) != 0 {
		t.Fatalf("unexpected: got %s want %s", out, expected)
	}
	if out.Sign() <= 0 {
		t.Fatalf("amountOut should be positive")
	}
}

func TestSpotPrice(t *testing.T) {
	num, den := SpotPrice(big.NewInt(1_000_000), big.NewInt(2_000_000))
	if num.Cmp(big.NewInt(1_994_000_000)) != 0 || den.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Fatalf("unexpected spot: %s/%s", num, den)
	}
}

// Realized rates never beat the marginal rate. The unfloored rate
// in*997*rOut / ((rIn*1000 + in*997)*in) falls as the trade grows.
func TestGetAmountOut_BelowSpot(t *testing.T) {
	rIn := new(big.Int).SetUint64(5_000_000_000_000_000)
	rOut := new(big.Int).SetUint64(100_000_000_000_000_000)
	num, den := SpotPrice(rIn, rOut)
	spot := new(big.Rat).SetFrac(num, den)

	var dst, t1, t2 big.Int
	var prev *big.Rat
	for in := int64(1_000_000); in < 1_000_000_000_000_000; in *= 10 {
		amountIn := big.NewInt(in)
		out := GetAmountOut(&dst, &t1, &t2, amountIn, rIn, rOut)
		rate := new(big.Rat).SetFrac(out, amountIn)
		if rate.Cmp(spot) > 0 {
			t.Fatalf("rate beat spot at in=%d: %s > %s", in, rate.FloatString(6), spot.FloatString(6))
		}

		withFee := new(big.Int).Mul(amountIn, big.NewInt(997))
		exactNum := new(big.Int).Mul(withFee, rOut)
		exactDen := new(big.Int).Mul(rIn, big.NewInt(1000))
		exactDen.Add(exactDen, withFee)
		exactDen.Mul(exactDen, amountIn)
		exact := new(big.Rat).SetFrac(exactNum, exactDen)
		if exact.Cmp(spot) >= 0 {
			t.Fatalf("unfloored rate reached spot at in=%d", in)
		}
		if prev != nil && exact.Cmp(prev) >= 0 {
			t.Fatalf("unfloored rate did not fall at in=%d: %s >= %s", in, exact.FloatString(12), prev.FloatString(12))
		}
		prev = exact
	}
}
