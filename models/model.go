package models

import (
	"fmt"

	"github.com/bcdannyboy/sabrmc/params"
	"golang.org/x/exp/rand"
)

// ModelKind selects the diffusion Simulate integrates.
type ModelKind string

const (
	BlackScholes ModelKind = "BlackScholes"
	SABR         ModelKind = "SABR"
)

// ParseModelKind accepts the exact selector names and reports anything else,
// "Heston" included, as ErrUnsupportedModel.
func ParseModelKind(name string) (ModelKind, error) {
	switch ModelKind(name) {
	case BlackScholes, SABR:
		return ModelKind(name), nil
	}
	return "", fmt.Errorf("%w: %q", params.ErrUnsupportedModel, name)
}

// State is the diffusion state carried between steps. Alpha is only used by
// SABR.
type State struct {
	Price float64
	Alpha float64
}

// Model advances the diffusion by one time step.
type Model interface {
	Kind() ModelKind
	InitialState(price float64) State
	Step(s State, elapsed, dt float64, rng *rand.Rand) (State, error)
}

// Option adjusts how NewModel builds a variant.
type Option func(*modelOptions)

type modelOptions struct {
	term *VolatilityTermStructure
}

// WithTermStructure gives the BlackScholes variant a time-varying volatility.
// SABR ignores it.
func WithTermStructure(ts *VolatilityTermStructure) Option {
	return func(o *modelOptions) { o.term = ts }
}

// NewModel resolves the selector and builds the variant with only the
// parameters it needs. Unknown selectors fail before any simulation work.
func NewModel(name string, p params.Set, opts ...Option) (Model, error) {
	kind, err := ParseModelKind(name)
	if err != nil {
		return nil, err
	}

	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case BlackScholes:
		m, err := NewBlackScholesModel(p.Volatility, o.term)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		m, err := NewSABRModel(p.SABR)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// NewRand returns a deterministic stream for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
