package depth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	o := newCurveOracle(2700, 1_000_000_000)
	levels := []float64{0.05, 0.01, 0.02}

	results, err := Profile(context.Background(), o, tokenA, tokenB, levels, 0.0001, probe(1))
	require.NoError(t, err)
	require.Len(t, results, len(levels))

	for i, level := range levels {
		requireWithin(t, o, results[i], level, 0.0001)
	}
	// deeper levels need more input
	assert.True(t, results[1].AmountIn.Lt(results[2].AmountIn))
	assert.True(t, results[2].AmountIn.Lt(results[0].AmountIn))
}

func TestProfile_FirstErrorWins(t *testing.T) {
	_, err := Profile(context.Background(), stepOracle{}, tokenA, tokenB, []float64{0.01, 0.02}, 0.0001, probe(1))
	require.ErrorIs(t, err, ErrToleranceUnattainable)

	results, err := Profile(context.Background(), stepOracle{}, tokenA, tokenB, nil, 0.0001)
	require.NoError(t, err)
	assert.Empty(t, results)
}
