package positions

import (
	"math"

	"github.com/bcdannyboy/sabrmc/params"
)

const (
	maxIterations = 100
	epsilon       = 1e-10
	minVega       = 1e-12
)

// BlackImpliedVolatility backs the volatility out of an undiscounted Black
// price by Newton iteration on vega.
func BlackImpliedVolatility(price float64, kind OptionKind, f, K, T float64) (float64, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{{"forward", f}, {"strike", K}, {"maturity", T}} {
		if err := params.Positive(p.name, p.value); err != nil {
			return 0, err
		}
	}

	var lower, upper float64
	if kind == Put {
		lower, upper = math.Max(K-f, 0), K
	} else {
		lower, upper = math.Max(f-K, 0), f
	}
	if math.IsNaN(price) || price <= lower || price >= upper {
		return 0, params.Domain("price", price, "outside no-arbitrage bounds")
	}

	// Brenner-Subrahmanyam starting point
	sigma := math.Sqrt(2*math.Pi/T) * price / f
	if sigma <= 0 || math.IsInf(sigma, 0) {
		sigma = 0.5
	}

	for i := 0; i < maxIterations; i++ {
		r, err := black(f, K, sigma, T)
		if err != nil {
			break
		}
		diff := r.Price(kind) - price
		if math.Abs(diff) < epsilon {
			return sigma, nil
		}

		vega := f * normPDF(r.D1) * math.Sqrt(T)
		if vega < minVega {
			break
		}

		sigma = sigma - diff/vega
		if sigma <= 0 {
			sigma = 0.0001
		}
	}
	return 0, params.Domain("price", price, "implied volatility did not converge")
}
