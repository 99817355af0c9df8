package models

import (
	"math"
	"testing"

	"github.com/bcdannyboy/sabrmc/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCholeskyFactor(t *testing.T) {
	l := choleskyFactor(0.3)
	assert.InDelta(t, 1, l[0][0], 1e-15)
	assert.InDelta(t, 0, l[0][1], 1e-15)
	assert.InDelta(t, 0.3, l[1][0], 1e-15)
	assert.InDelta(t, math.Sqrt(1-0.09), l[1][1], 1e-15)

	assert.Equal(t, [2][2]float64{{1, 0}, {1, 0}}, choleskyFactor(1))
	assert.Equal(t, [2][2]float64{{1, 0}, {-1, 0}}, choleskyFactor(-1))
}

func sampleIncrements(t *testing.T, rho float64, n int) ([]float64, []float64) {
	t.Helper()
	m, err := NewSABRModel(params.SABR{Alpha: 0.2, Beta: 0.5, Rho: rho, Nu: 0.3})
	require.NoError(t, err)

	rng := NewRand(2024)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i], y[i] = m.BrownianIncrements(DefaultDt, rng)
	}
	return x, y
}

func TestSABRIncrementCorrelation(t *testing.T) {
	const n = 20000

	x, y := sampleIncrements(t, 0, n)
	assert.InDelta(t, 0, stat.Correlation(x, y, nil), 0.04)

	x, y = sampleIncrements(t, 0.7, n)
	assert.InDelta(t, 0.7, stat.Correlation(x, y, nil), 0.03)

	// variance of each increment is dt
	_, std := stat.MeanStdDev(x, nil)
	assert.InDelta(t, math.Sqrt(DefaultDt), std, 0.03*math.Sqrt(DefaultDt))
}

func TestSABRPerfectCorrelation(t *testing.T) {
	x, y := sampleIncrements(t, 1, 1000)
	assert.Equal(t, x, y)

	x, y = sampleIncrements(t, -1, 1000)
	for i := range x {
		require.Equal(t, -x[i], y[i])
	}
}
