package probability

import (
	"fmt"
	"math"
	"sort"

	"github.com/bcdannyboy/sabrmc/params"
	"gonum.org/v1/gonum/stat"
)

// PnL converts payoffs of a long option position bought at premium into
// profit and loss.
func PnL(payoffs []float64, premium float64) []float64 {
	pnl := make([]float64, len(payoffs))
	for i, p := range payoffs {
		pnl[i] = p - premium
	}
	return pnl
}

// CalculateVaR returns the loss not exceeded with the given confidence.
func CalculateVaR(pnl []float64, confidenceLevel float64) (float64, error) {
	losses, err := sortedLosses(pnl, confidenceLevel)
	if err != nil {
		return 0, err
	}
	return stat.Quantile(confidenceLevel, stat.Empirical, losses, nil), nil
}

// ExpectedShortfall is the mean loss beyond the VaR.
func ExpectedShortfall(pnl []float64, confidenceLevel float64) (float64, error) {
	losses, err := sortedLosses(pnl, confidenceLevel)
	if err != nil {
		return 0, err
	}
	v := stat.Quantile(confidenceLevel, stat.Empirical, losses, nil)

	i := sort.SearchFloat64s(losses, v)
	return stat.Mean(losses[i:], nil), nil
}

func sortedLosses(pnl []float64, confidenceLevel float64) ([]float64, error) {
	if len(pnl) == 0 {
		return nil, fmt.Errorf("%w: empty P&L sample", params.ErrInvalidParameter)
	}
	if math.IsNaN(confidenceLevel) || confidenceLevel <= 0 || confidenceLevel >= 1 {
		return nil, fmt.Errorf("%w: confidence level %v must be in (0,1)", params.ErrInvalidParameter, confidenceLevel)
	}

	losses := make([]float64, len(pnl))
	for i, p := range pnl {
		losses[i] = -p
	}
	sort.Float64s(losses)
	return losses, nil
}
