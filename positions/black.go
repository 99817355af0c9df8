package positions

import (
	"math"

	"github.com/bcdannyboy/sabrmc/params"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlackPricer evaluates the Black formula once at construction and keeps the
// result. PriceAt re-evaluates at another forward without touching it.
type BlackPricer struct {
	market params.Market
	result BlackResult
}

func NewBlackPricer(m params.Market) (*BlackPricer, error) {
	r, err := BlackPrice(m)
	if err != nil {
		return nil, err
	}
	return &BlackPricer{market: m, result: r}, nil
}

func (p *BlackPricer) Market() params.Market { return p.market }
func (p *BlackPricer) Result() BlackResult   { return p.result }
func (p *BlackPricer) D1() float64           { return p.result.D1 }
func (p *BlackPricer) D2() float64           { return p.result.D2 }
func (p *BlackPricer) CallPrice() float64    { return p.result.CallPrice }
func (p *BlackPricer) PutPrice() float64     { return p.result.PutPrice }

// PriceAt evaluates the formula with forward in place of the pricer's own.
func (p *BlackPricer) PriceAt(forward float64) (BlackResult, error) {
	if math.IsNaN(forward) || math.IsInf(forward, 0) || forward <= 0 {
		return BlackResult{}, params.Domain("forward", forward, "log(f/K) needs a positive finite forward")
	}
	return black(forward, p.market.Strike, p.market.Volatility, p.market.Maturity)
}

// Greeks returns the sensitivities at the pricer's forward.
func (p *BlackPricer) Greeks(kind OptionKind) BlackGreeks {
	return blackGreeks(p.market.Forward, p.market.Volatility, p.market.Maturity, p.result.D1, kind)
}

// BlackPrice is the stateless form of the Black formula.
func BlackPrice(m params.Market) (BlackResult, error) {
	if err := m.Validate(); err != nil {
		return BlackResult{}, err
	}
	return black(m.Forward, m.Strike, m.Volatility, m.Maturity)
}

// black fails with ErrDomain when sigma*sqrt(T) underflows or any output is
// not finite.
func black(f, K, sigma, T float64) (BlackResult, error) {
	d1, d2 := dValues(f, K, sigma, T)
	call := f*normCDF(d1) - K*normCDF(d2)
	r := BlackResult{
		Forward:   f,
		D1:        d1,
		D2:        d2,
		CallPrice: call,
		PutPrice:  call + K - f,
	}
	for _, v := range []struct {
		name  string
		value float64
	}{{"d1", r.D1}, {"d2", r.D2}, {"call_price", r.CallPrice}, {"put_price", r.PutPrice}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return BlackResult{}, params.Domain(v.name, v.value, "non-finite result")
		}
	}
	return r, nil
}

func dValues(f, K, sigma, T float64) (float64, float64) {
	logPart := math.Log(f / K)
	sigmaPart := 0.5 * sigma * sigma * T
	denominator := sigma * math.Sqrt(T)
	return (logPart + sigmaPart) / denominator, (logPart - sigmaPart) / denominator
}

func blackGreeks(f, sigma, T, d1 float64, kind OptionKind) BlackGreeks {
	sqrtT := math.Sqrt(T)
	delta := normCDF(d1)
	if kind == Put {
		delta--
	}
	return BlackGreeks{
		Delta: delta,
		Gamma: normPDF(d1) / (f * sigma * sqrtT),
		Vega:  f * normPDF(d1) * sqrtT,
		Theta: -f * normPDF(d1) * sigma / (2 * sqrtT),
	}
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
