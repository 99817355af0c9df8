package models

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/sabrmc/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestStepCount(t *testing.T) {
	// The countdown runs in float64, so accumulated rounding decides the
	// boundary step.
	assert.Equal(t, 365, StepCount(1, 1.0/365))
	assert.Equal(t, 182, StepCount(0.5, 1.0/365))
	assert.Equal(t, 252, StepCount(1, 1.0/252))
	assert.Equal(t, 504, StepCount(2, 1.0/252))
	assert.Equal(t, 3, StepCount(1, 0.25))
	assert.Equal(t, 10, StepCount(1, 0.1))
	assert.Equal(t, 0, StepCount(0.1, 0.1))
}

func TestSimulateLengthMatchesStepCount(t *testing.T) {
	m, err := NewBlackScholesModel(20, nil)
	require.NoError(t, err)

	for _, c := range []struct{ maturity, dt float64 }{
		{1, DefaultDt}, {0.5, DefaultDt}, {2, 1.0 / 252}, {1, 0.25}, {1, 0.1}, {0.1, 0.1},
	} {
		p, err := Simulate(m, 100, c.maturity, c.dt, NewRand(5))
		require.NoError(t, err)
		assert.Equal(t, StepCount(c.maturity, c.dt), p.Len(), "maturity=%g dt=%g", c.maturity, c.dt)
		assert.LessOrEqual(t, p.Len(), int(c.maturity/c.dt)+1)
	}
}

func TestSimulatePathLength(t *testing.T) {
	for _, name := range []string{"BlackScholes", "SABR"} {
		m, err := NewModel(name, testSet)
		require.NoError(t, err)

		p, err := Simulate(m, 100, 1, DefaultDt, NewRand(1))
		require.NoError(t, err)
		assert.Equal(t, 365, p.Len(), name)
		assert.Equal(t, p.Prices[len(p.Prices)-1], p.FinalPrice, name)
		assert.Equal(t, 100.0, p.InitialPrice, name)
		assert.Len(t, p.Times(), 365)

		p, err = Simulate(m, 100, 1, 0.25, NewRand(1))
		require.NoError(t, err)
		assert.Equal(t, 3, p.Len(), name)
		assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75}, p.Times(), 1e-15)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	for _, name := range []string{"BlackScholes", "SABR"} {
		m, err := NewModel(name, testSet)
		require.NoError(t, err)

		a, err := Simulate(m, 100, 1, DefaultDt, NewRand(42))
		require.NoError(t, err)
		b, err := Simulate(m, 100, 1, DefaultDt, NewRand(42))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)

		c, err := Simulate(m, 100, 1, DefaultDt, NewRand(43))
		require.NoError(t, err)
		assert.NotEqual(t, a.Prices, c.Prices, name)
	}
}

func TestBlackScholesIncrements(t *testing.T) {
	m, err := NewBlackScholesModel(15, nil)
	require.NoError(t, err)

	dt := 0.01
	p, err := Simulate(m, 100, 0.5, dt, NewRand(3))
	require.NoError(t, err)
	assert.Empty(t, p.Alphas)

	rng := NewRand(3)
	price := 100.0
	for i := range p.Prices {
		price += 15 * rng.NormFloat64() * math.Sqrt(dt)
		assert.InDelta(t, price, p.Prices[i], 1e-9, "step %d", i)
	}
}

func TestSABRIncrements(t *testing.T) {
	sp := params.SABR{Alpha: 0.3, Beta: 0.7, Rho: 0.25, Nu: 0.2}
	m, err := NewSABRModel(sp)
	require.NoError(t, err)

	dt := 1.0 / 52
	p, err := Simulate(m, 1.5, 1, dt, NewRand(11))
	require.NoError(t, err)
	require.Len(t, p.Alphas, p.Len())

	rng := NewRand(11)
	alpha, price := sp.Alpha, 1.5
	for i := range p.Prices {
		dW0, dW1 := m.BrownianIncrements(dt, rng)
		dalpha := sp.Nu * math.Pow(alpha, sp.Beta) * dW0
		dY := alpha * math.Pow(price, sp.Beta) * dW1
		alpha += dalpha
		price += dY
		require.InDelta(t, alpha, p.Alphas[i], 1e-12, "step %d", i)
		require.InDelta(t, price, p.Prices[i], 1e-12, "step %d", i)
	}
	assert.Equal(t, p.Alphas[len(p.Alphas)-1], p.FinalAlpha)
}

func TestSABRBetaLimits(t *testing.T) {
	for _, beta := range []float64{0, 1} {
		m, err := NewSABRModel(params.SABR{Alpha: 0.2, Beta: beta, Rho: -0.5, Nu: 0.3})
		require.NoError(t, err)
		p, err := Simulate(m, 100, 0.5, DefaultDt, NewRand(5))
		require.NoError(t, err, "beta %v", beta)
		assert.Equal(t, StepCount(0.5, DefaultDt), p.Len())
	}
}

func TestSABRConstantAlphaWithoutVolOfVol(t *testing.T) {
	m, err := NewSABRModel(params.SABR{Alpha: 0.2, Beta: 0.5, Rho: 0.4, Nu: 0})
	require.NoError(t, err)
	p, err := Simulate(m, 100, 1, DefaultDt, NewRand(8))
	require.NoError(t, err)
	for _, a := range p.Alphas {
		assert.Equal(t, 0.2, a)
	}
}

func TestSABRNegativePriceIsDomainError(t *testing.T) {
	m, err := NewSABRModel(params.SABR{Alpha: 0.2, Beta: 0.5, Rho: 0, Nu: 0.3})
	require.NoError(t, err)

	_, err = m.Step(State{Price: -1, Alpha: 0.2}, 0, 0.01, NewRand(1))
	assert.ErrorIs(t, err, params.ErrDomain)

	_, err = m.Step(State{Price: 1, Alpha: -0.2}, 0, 0.01, NewRand(1))
	assert.ErrorIs(t, err, params.ErrDomain)

	m, err = NewSABRModel(params.SABR{Alpha: 0.2, Beta: 1, Rho: 0, Nu: 0.3})
	require.NoError(t, err)
	_, err = m.Step(State{Price: -1, Alpha: 0.2}, 0, 0.01, NewRand(1))
	assert.NoError(t, err, "integer beta is defined for negative prices")
}

type failingModel struct {
	failAt int
	calls  int
}

func (f *failingModel) Kind() ModelKind                  { return BlackScholes }
func (f *failingModel) InitialState(price float64) State { return State{Price: price} }
func (f *failingModel) Step(s State, _, _ float64, _ *rand.Rand) (State, error) {
	if f.calls == f.failAt {
		return State{}, params.Domain("price", -1, "forced")
	}
	f.calls++
	s.Price++
	return s, nil
}

func TestSimulateFailureReturnsNoPath(t *testing.T) {
	p, err := Simulate(&failingModel{failAt: 3}, 100, 1, 0.1, NewRand(1))
	assert.Nil(t, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, params.ErrDomain)
	assert.Contains(t, err.Error(), "step 3")
}

func TestSimulateInvalidArguments(t *testing.T) {
	m, err := NewBlackScholesModel(0.2, nil)
	require.NoError(t, err)

	cases := []struct {
		name string
		run  func() (*Path, error)
		want error
	}{
		{"nil model", func() (*Path, error) { return Simulate(nil, 100, 1, 0.1, NewRand(1)) }, params.ErrInvalidParameter},
		{"nil rng", func() (*Path, error) { return Simulate(m, 100, 1, 0.1, nil) }, params.ErrInvalidParameter},
		{"price", func() (*Path, error) { return Simulate(m, 0, 1, 0.1, NewRand(1)) }, params.ErrInvalidParameter},
		{"maturity", func() (*Path, error) { return Simulate(m, 100, -1, 0.1, NewRand(1)) }, params.ErrInvalidParameter},
		{"dt", func() (*Path, error) { return Simulate(m, 100, 1, 0, NewRand(1)) }, params.ErrInvalidParameter},
		{"tiny dt", func() (*Path, error) { return Simulate(m, 100, 1e6, 1e-12, NewRand(1)) }, params.ErrDomain},
	}
	for _, tc := range cases {
		p, err := tc.run()
		assert.Nil(t, p, tc.name)
		assert.True(t, errors.Is(err, tc.want), tc.name)
	}
}
