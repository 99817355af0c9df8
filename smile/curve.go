package smile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// CurvePoint is one (forward, implied vol) pair.
type CurvePoint struct {
	Forward float64 `json:"forward"`
	Vol     float64 `json:"vol"`
}

// Curve is a labelled sequence of points for the presentation layer.
type Curve struct {
	Label  string       `json:"label"`
	ATM    bool         `json:"atm"`
	Points []CurvePoint `json:"points"`
}

func (c Curve) XY(i int) (float64, float64) { return c.Points[i].Forward, c.Points[i].Vol }
func (c Curve) Len() int                    { return len(c.Points) }

// ATMCurve evaluates the backbone at each forward.
func (a *Approximation) ATMCurve(forwards []float64) (Curve, error) {
	points := make([]CurvePoint, len(forwards))
	for i, f := range forwards {
		v, err := a.ATMVol(f)
		if err != nil {
			return Curve{}, err
		}
		points[i] = CurvePoint{Forward: f, Vol: v}
	}
	return Curve{Label: "ATM volatility", ATM: true, Points: points}, nil
}

// ImpliedVolCurve evaluates the fixed-strike implied vol at each forward.
func (a *Approximation) ImpliedVolCurve(strike float64, forwards []float64) (Curve, error) {
	points := make([]CurvePoint, len(forwards))
	for i, f := range forwards {
		v, err := a.ImpliedVol(strike, f)
		if err != nil {
			return Curve{}, err
		}
		points[i] = CurvePoint{Forward: f, Vol: v}
	}
	return Curve{Label: fmt.Sprintf("K=%g", strike), Points: points}, nil
}

// Grid returns n evenly spaced values from lo to hi inclusive.
func Grid(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
