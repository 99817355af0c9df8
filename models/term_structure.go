package models

import (
	"fmt"
	"sort"

	"github.com/bcdannyboy/sabrmc/params"
)

// VolatilityTermStructure gives a time-varying volatility for the
// BlackScholes diffusion. Times are in years from the simulation start.
type VolatilityTermStructure struct {
	Times []float64
	Vols  []float64
}

func NewVolatilityTermStructure(times, vols []float64) (*VolatilityTermStructure, error) {
	if len(times) == 0 || len(times) != len(vols) {
		return nil, fmt.Errorf("%w: term structure needs matching times and vols, got %d and %d",
			params.ErrInvalidParameter, len(times), len(vols))
	}
	for i := range times {
		if i > 0 && times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: term structure times must be increasing", params.ErrInvalidParameter)
		}
		if err := params.Positive("volatility", vols[i]); err != nil {
			return nil, err
		}
	}
	return &VolatilityTermStructure{
		Times: append([]float64(nil), times...),
		Vols:  append([]float64(nil), vols...),
	}, nil
}

// At interpolates linearly between pillars and extrapolates flat.
func (ts *VolatilityTermStructure) At(t float64) float64 {
	n := len(ts.Times)
	if t <= ts.Times[0] {
		return ts.Vols[0]
	}
	if t >= ts.Times[n-1] {
		return ts.Vols[n-1]
	}

	i := sort.SearchFloat64s(ts.Times, t)
	if ts.Times[i] == t {
		return ts.Vols[i]
	}
	t0, t1 := ts.Times[i-1], ts.Times[i]
	v0, v1 := ts.Vols[i-1], ts.Vols[i]
	x := (t - t0) / (t1 - t0)
	return (1-x)*v0 + x*v1
}
