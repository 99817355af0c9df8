package models

import (
	"math"

	"github.com/bcdannyboy/sabrmc/params"
	"golang.org/x/exp/rand"
)

// BlackScholesModel is the one-factor diffusion dS = sigma(t) dW.
type BlackScholesModel struct {
	Volatility float64
	Term       *VolatilityTermStructure // optional, overrides Volatility
}

// NewBlackScholesModel validates volatility even when term is set, since it
// is the fallback for a nil term.
func NewBlackScholesModel(volatility float64, term *VolatilityTermStructure) (*BlackScholesModel, error) {
	if err := params.Positive("volatility", volatility); err != nil {
		return nil, err
	}
	return &BlackScholesModel{Volatility: volatility, Term: term}, nil
}

func (m *BlackScholesModel) Kind() ModelKind { return BlackScholes }

func (m *BlackScholesModel) InitialState(price float64) State {
	return State{Price: price}
}

func (m *BlackScholesModel) VolatilityAt(elapsed float64) float64 {
	if m.Term != nil {
		return m.Term.At(elapsed)
	}
	return m.Volatility
}

func (m *BlackScholesModel) Step(s State, elapsed, dt float64, rng *rand.Rand) (State, error) {
	dWt := rng.NormFloat64() * math.Sqrt(dt)
	dYt := m.VolatilityAt(elapsed) * dWt
	s.Price += dYt
	if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		return State{}, params.Domain("price", s.Price, "diverged")
	}
	return s, nil
}
