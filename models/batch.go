package models

import (
	"fmt"

	"github.com/bcdannyboy/sabrmc/params"
	"golang.org/x/exp/rand"
)

// Progress receives one Increment per completed path. *mpb.Bar satisfies it.
type Progress interface {
	Increment()
}

// Simulator draws successive paths for one model and parameter set from a
// single random stream.
type Simulator struct {
	Model        Model
	InitialPrice float64
	Maturity     float64
	Dt           float64
	Rand         *rand.Rand
}

// NewSimulator seeds a fresh stream with NewRand(seed).
func NewSimulator(m Model, initialPrice, maturity, dt float64, seed uint64) *Simulator {
	return &Simulator{
		Model:        m,
		InitialPrice: initialPrice,
		Maturity:     maturity,
		Dt:           dt,
		Rand:         NewRand(seed),
	}
}

func (s *Simulator) Simulate() (*Path, error) {
	return Simulate(s.Model, s.InitialPrice, s.Maturity, s.Dt, s.Rand)
}

// SimulateBatch generates n paths in sequence. Any failure discards the batch.
func (s *Simulator) SimulateBatch(n int, progress Progress) ([]*Path, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: path count must be positive, got %d", params.ErrInvalidParameter, n)
	}

	paths := make([]*Path, n)
	for i := range paths {
		p, err := s.Simulate()
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		paths[i] = p
		if progress != nil {
			progress.Increment()
		}
	}
	return paths, nil
}

// TerminalPrices generates n paths in sequence keeping only each final price.
func (s *Simulator) TerminalPrices(n int, progress Progress) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: path count must be positive, got %d", params.ErrInvalidParameter, n)
	}

	prices := make([]float64, n)
	for i := range prices {
		p, err := s.Simulate()
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		prices[i] = p.FinalPrice
		if progress != nil {
			progress.Increment()
		}
	}
	return prices, nil
}
