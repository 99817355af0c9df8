package params

import "math"

// Market is the parameter bundle shared by the Black pricer and the diffusion
// model.
type Market struct {
	Forward    float64 `json:"forward"`
	Strike     float64 `json:"strike"`
	Maturity   float64 `json:"maturity"`   // years
	Volatility float64 `json:"volatility"` // Black implied volatility
}

// SABR holds the stochastic-alpha-beta-rho parameters.
type SABR struct {
	Alpha float64 `json:"alpha"` // initial stochastic volatility
	Beta  float64 `json:"beta"`  // CEV exponent
	Rho   float64 `json:"rho"`   // spot-vol correlation
	Nu    float64 `json:"nu"`    // vol-of-vol
}

// Set is the full parameter vocabulary recognized by the reference data.
type Set struct {
	Market
	SABR SABR `json:"sabr"`
}

func (m Market) Validate() error {
	if err := Positive("forward", m.Forward); err != nil {
		return err
	}
	if err := Positive("strike", m.Strike); err != nil {
		return err
	}
	if err := Positive("maturity", m.Maturity); err != nil {
		return err
	}
	return Positive("volatility", m.Volatility)
}

// Validate checks alpha, rho and nu. Beta is left unchecked: the closed-form
// expansion is well defined for any beta.
func (s SABR) Validate() error {
	if err := Positive("alpha", s.Alpha); err != nil {
		return err
	}
	if !isFinite(s.Beta) {
		return invalid("beta", s.Beta, "must be finite")
	}
	if err := ValidateCorrelation(s.Rho); err != nil {
		return err
	}
	if !isFinite(s.Nu) || s.Nu < 0 {
		return invalid("nu", s.Nu, "must be non-negative")
	}
	return nil
}

// ValidateBeta enforces beta in [0,1], required by the path simulator.
func (s SABR) ValidateBeta() error {
	if s.Beta < 0 || s.Beta > 1 {
		return invalid("beta", s.Beta, "must be in [0,1]")
	}
	return nil
}

func (s Set) Validate() error {
	if err := s.Market.Validate(); err != nil {
		return err
	}
	return s.SABR.Validate()
}

func ValidateCorrelation(rho float64) error {
	if math.IsNaN(rho) || rho < -1 || rho > 1 {
		return invalid("rho", rho, "must be in [-1,1]")
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
