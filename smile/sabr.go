// Package smile evaluates the SABR asymptotic implied-volatility expansion
// and builds curves of (forward, implied vol) pairs.
package smile

import (
	"math"

	"github.com/bcdannyboy/sabrmc/params"
)

// Approximation holds a forward, a maturity and SABR parameters. Evaluations
// may override the forward without changing the receiver.
type Approximation struct {
	Forward  float64     `json:"forward"`
	Maturity float64     `json:"maturity"`
	Params   params.SABR `json:"params"`
}

// NewApproximation validates its inputs. Beta is not range checked.
func NewApproximation(forward, maturity float64, p params.SABR) (*Approximation, error) {
	if err := params.Positive("forward", forward); err != nil {
		return nil, err
	}
	if err := params.Positive("maturity", maturity); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Approximation{Forward: forward, Maturity: maturity, Params: p}, nil
}

// ATMVol is the at-the-money backbone at the given forward.
func (a *Approximation) ATMVol(forward float64) (float64, error) {
	if err := checkOperand("forward", forward); err != nil {
		return 0, err
	}
	alpha, beta, rho, nu := a.Params.Alpha, a.Params.Beta, a.Params.Rho, a.Params.Nu
	fb := math.Pow(forward, 1-beta)

	correction := (1-beta)*(1-beta)/24*alpha*alpha/math.Pow(forward, 2-2*beta) +
		0.25*rho*beta*alpha*nu/fb +
		(2-3*rho*rho)/24*nu*nu
	return result(alpha / fb * (1 + correction*a.Maturity))
}

// Lambda is nu/alpha * f^(1-beta).
func (a *Approximation) Lambda(forward float64) (float64, error) {
	if err := checkOperand("forward", forward); err != nil {
		return 0, err
	}
	return result(a.Params.Nu / a.Params.Alpha * math.Pow(forward, 1-a.Params.Beta))
}

// ImpliedVol is the log-moneyness expansion at strike K and the given forward.
func (a *Approximation) ImpliedVol(strike, forward float64) (float64, error) {
	if err := checkOperand("strike", strike); err != nil {
		return 0, err
	}
	lambda, err := a.Lambda(forward)
	if err != nil {
		return 0, err
	}

	alpha, beta, rho := a.Params.Alpha, a.Params.Beta, a.Params.Rho
	x := math.Log(strike / forward)

	return result(alpha / math.Pow(forward, 1-beta) * (1 -
		0.5*(1-beta-rho*lambda)*x +
		(1.0/12)*((1-beta)*(1-beta)+(2-3*rho*rho)*lambda*lambda)*x*x))
}

// AtForward evaluates both ATMVol and ImpliedVol at the receiver's forward.
func (a *Approximation) AtForward(strike float64) (atm, vol float64, err error) {
	if atm, err = a.ATMVol(a.Forward); err != nil {
		return 0, 0, err
	}
	if vol, err = a.ImpliedVol(strike, a.Forward); err != nil {
		return 0, 0, err
	}
	return atm, vol, nil
}

func checkOperand(name string, x float64) error {
	if math.IsNaN(x) || x <= 0 {
		return params.Domain(name, x, "must be positive for log and power terms")
	}
	return nil
}

func result(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, params.Domain("implied_vol", v, "non-finite result")
	}
	return v, nil
}
