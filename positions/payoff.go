package positions

import "math"

// Payoff maps a terminal price to the option's payoff.
type Payoff interface {
	Payoff(price float64) float64
	Strike() float64
}

type EuropeanCall struct {
	K float64
}

func (c EuropeanCall) Payoff(price float64) float64 {
	return math.Max(price-c.K, 0)
}

func (c EuropeanCall) Strike() float64 { return c.K }

type EuropeanPut struct {
	K float64
}

func (p EuropeanPut) Payoff(price float64) float64 {
	return math.Max(p.K-price, 0)
}

func (p EuropeanPut) Strike() float64 { return p.K }

func NewPayoff(kind OptionKind, strike float64) Payoff {
	if kind == Put {
		return EuropeanPut{K: strike}
	}
	return EuropeanCall{K: strike}
}
