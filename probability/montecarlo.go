package probability

import (
	"fmt"

	"github.com/bcdannyboy/sabrmc/models"
	"github.com/bcdannyboy/sabrmc/params"
	"github.com/bcdannyboy/sabrmc/positions"
	"gonum.org/v1/gonum/stat"
)

// Estimate is a Monte Carlo price with its standard error. Prices are
// undiscounted, like the Black formula.
type Estimate struct {
	Model     models.ModelKind `json:"model"`
	Price     float64          `json:"price"`
	StdDev    float64          `json:"std_dev"`
	StdErr    float64          `json:"std_err"`
	Paths     int              `json:"paths"`
	MeanFinal float64          `json:"mean_final"`
	Payoffs   []float64        `json:"-"`
}

// ConfidenceInterval returns price -/+ z standard errors.
func (e Estimate) ConfidenceInterval(z float64) (float64, float64) {
	return e.Price - z*e.StdErr, e.Price + z*e.StdErr
}

// MonteCarloPrice averages the payoff over the terminal prices of n simulated
// paths.
func MonteCarloPrice(sim *models.Simulator, payoff positions.Payoff, n int, progress models.Progress) (Estimate, error) {
	if payoff == nil {
		return Estimate{}, fmt.Errorf("%w: nil payoff", params.ErrInvalidParameter)
	}
	if n < 2 {
		return Estimate{}, fmt.Errorf("%w: at least 2 paths are needed for a standard error, got %d", params.ErrInvalidParameter, n)
	}

	finals, err := sim.TerminalPrices(n, progress)
	if err != nil {
		return Estimate{}, err
	}

	payoffs := make([]float64, len(finals))
	for i, s := range finals {
		payoffs[i] = payoff.Payoff(s)
	}

	mean, std := stat.MeanStdDev(payoffs, nil)
	return Estimate{
		Model:     sim.Model.Kind(),
		Price:     mean,
		StdDev:    std,
		StdErr:    stat.StdErr(std, float64(n)),
		Paths:     n,
		MeanFinal: stat.Mean(finals, nil),
		Payoffs:   payoffs,
	}, nil
}
