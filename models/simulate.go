package models

import (
	"fmt"

	"github.com/bcdannyboy/sabrmc/params"
	"golang.org/x/exp/rand"
)

const DefaultDt = 1.0 / 365

// maxPrealloc bounds the capacity hint for very fine grids.
const maxPrealloc = 1 << 20

// Path is one completed simulation. Prices holds one entry per step and does
// not include InitialPrice.
type Path struct {
	Model        ModelKind `json:"model"`
	InitialPrice float64   `json:"initial_price"`
	Dt           float64   `json:"dt"`
	Prices       []float64 `json:"prices"`
	Alphas       []float64 `json:"alphas,omitempty"`
	FinalPrice   float64   `json:"final_price"`
	FinalAlpha   float64   `json:"final_alpha,omitempty"`
}

func (p *Path) Len() int { return len(p.Prices) }

// Times returns the elapsed time at each entry of Prices.
func (p *Path) Times() []float64 {
	times := make([]float64, len(p.Prices))
	elapsed := 0.0
	for i := range times {
		elapsed += p.Dt
		times[i] = elapsed
	}
	return times
}

// StepCount is the number of steps Simulate takes: the remaining horizon is
// counted down by dt and stepping continues while remaining-dt > 0.
func StepCount(maturity, dt float64) int {
	n := 0
	for remaining := maturity; remaining-dt > 0; remaining -= dt {
		n++
	}
	return n
}

// Simulate integrates one path from initialPrice over maturity with fixed step
// dt. It is a pure function of its arguments and the rng stream.
func Simulate(m Model, initialPrice, maturity, dt float64, rng *rand.Rand) (*Path, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", params.ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", params.ErrInvalidParameter)
	}
	if err := params.Positive("initial_price", initialPrice); err != nil {
		return nil, err
	}
	if err := params.Positive("maturity", maturity); err != nil {
		return nil, err
	}
	if err := params.Positive("dt", dt); err != nil {
		return nil, err
	}
	if maturity-dt == maturity {
		return nil, params.Domain("dt", dt, "too small to advance the horizon")
	}

	state := m.InitialState(initialPrice)
	withAlpha := m.Kind() == SABR

	steps := int(maturity/dt) + 1
	if steps > maxPrealloc {
		steps = maxPrealloc
	}
	prices := make([]float64, 0, steps)
	var alphas []float64
	if withAlpha {
		alphas = make([]float64, 0, steps)
	}

	remaining := maturity
	elapsed := 0.0
	for step := 0; remaining-dt > 0; step++ {
		next, err := m.Step(state, elapsed, dt, rng)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		state = next
		prices = append(prices, state.Price)
		if withAlpha {
			alphas = append(alphas, state.Alpha)
		}
		remaining -= dt
		elapsed += dt
	}

	return &Path{
		Model:        m.Kind(),
		InitialPrice: initialPrice,
		Dt:           dt,
		Prices:       prices,
		Alphas:       alphas,
		FinalPrice:   state.Price,
		FinalAlpha:   state.Alpha,
	}, nil
}
