package models

import (
	"math"

	"github.com/bcdannyboy/sabrmc/params"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// SABRModel is the two-factor diffusion
//
//	dalpha = nu * alpha^beta * dW0
//	dS     = alpha * S^beta * dW1,  corr(dW0, dW1) = rho
type SABRModel struct {
	Params params.SABR
	l      [2][2]float64 // lower Cholesky factor of [[1, rho], [rho, 1]]
}

// NewSABRModel requires beta in [0, 1] and factorizes the correlation once.
func NewSABRModel(p params.SABR) (*SABRModel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.ValidateBeta(); err != nil {
		return nil, err
	}
	return &SABRModel{Params: p, l: choleskyFactor(p.Rho)}, nil
}

// choleskyFactor factorizes the correlation matrix. At |rho| = 1 the matrix is
// singular and the rank-1 factor is used.
func choleskyFactor(rho float64) [2][2]float64 {
	c := mat.NewSymDense(2, []float64{1, rho, rho, 1})

	var chol mat.Cholesky
	if ok := chol.Factorize(c); !ok {
		return [2][2]float64{{1, 0}, {rho, 0}}
	}

	var l mat.TriDense
	chol.LTo(&l)
	return [2][2]float64{
		{l.At(0, 0), l.At(0, 1)},
		{l.At(1, 0), l.At(1, 1)},
	}
}

func (m *SABRModel) Kind() ModelKind { return SABR }

func (m *SABRModel) InitialState(price float64) State {
	return State{Price: price, Alpha: m.Params.Alpha}
}

// BrownianIncrements draws two independent N(0, dt) variates and correlates
// them through the Cholesky factor. The first drives alpha, the second the
// price.
func (m *SABRModel) BrownianIncrements(dt float64, rng *rand.Rand) (float64, float64) {
	sqrtDt := math.Sqrt(dt)
	u0 := rng.NormFloat64() * sqrtDt
	u1 := rng.NormFloat64() * sqrtDt
	return m.l[0][0]*u0 + m.l[0][1]*u1, m.l[1][0]*u0 + m.l[1][1]*u1
}

// Step reads the pre-step alpha for both increments, then applies alpha
// before price.
func (m *SABRModel) Step(s State, _ float64, dt float64, rng *rand.Rand) (State, error) {
	dW0, dW1 := m.BrownianIncrements(dt, rng)

	alphaBeta, err := power("alpha", s.Alpha, m.Params.Beta)
	if err != nil {
		return State{}, err
	}
	priceBeta, err := power("price", s.Price, m.Params.Beta)
	if err != nil {
		return State{}, err
	}

	dalpha := m.Params.Nu * alphaBeta * dW0
	dYt := s.Alpha * priceBeta * dW1

	s.Alpha += dalpha
	s.Price += dYt
	if !finite(s.Alpha) {
		return State{}, params.Domain("alpha", s.Alpha, "diverged")
	}
	if !finite(s.Price) {
		return State{}, params.Domain("price", s.Price, "diverged")
	}
	return s, nil
}

func power(name string, x, beta float64) (float64, error) {
	if x < 0 && beta != math.Trunc(beta) {
		return 0, params.Domain(name, x, "negative base with non-integer beta")
	}
	if x == 0 && beta < 0 {
		return 0, params.Domain(name, x, "zero base with negative beta")
	}
	return math.Pow(x, beta), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
