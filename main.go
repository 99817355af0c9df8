package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bcdannyboy/sabrmc/chart"
	"github.com/bcdannyboy/sabrmc/models"
	"github.com/bcdannyboy/sabrmc/params"
	"github.com/bcdannyboy/sabrmc/positions"
	"github.com/bcdannyboy/sabrmc/probability"
	"github.com/bcdannyboy/sabrmc/smile"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
)

const (
	confidenceLevel = 0.95
	curvePoints     = 101
)

type options struct {
	model   string
	kind    positions.OptionKind
	paths   int
	dt      float64
	seed    uint64
	strikes []float64
	term    *models.VolatilityTermStructure
}

type HostInfo struct {
	CPUModel     string `json:"cpu_model,omitempty"`
	LogicalCores int    `json:"logical_cores,omitempty"`
}

type Report struct {
	GeneratedAt       time.Time             `json:"generated_at"`
	Params            params.Set            `json:"params"`
	Kind              string                `json:"kind"`
	Black             positions.BlackResult `json:"black"`
	Greeks            positions.BlackGreeks `json:"greeks"`
	SABRATMVol        float64               `json:"sabr_atm_vol"`
	SABRImpliedVol    float64               `json:"sabr_implied_vol"`
	MonteCarlo        probability.Estimate  `json:"monte_carlo"`
	MCImpliedVol      *float64              `json:"mc_implied_vol,omitempty"`
	VaR95             float64               `json:"var_95"`
	ExpectedShortfall float64               `json:"expected_shortfall"`
	Curves            []smile.Curve         `json:"curves"`
	Host              HostInfo              `json:"host"`
	Elapsed           string                `json:"elapsed"`
}

func main() {
	envFile := flag.String("env", "reference.env", "reference data file")
	model := flag.String("model", string(models.SABR), "diffusion model: BlackScholes or SABR")
	kind := flag.String("kind", "call", "option kind: call or put")
	paths := flag.Int("paths", 10000, "number of Monte Carlo paths")
	dt := flag.Float64("dt", models.DefaultDt, "simulation time step in years")
	seed := flag.Uint64("seed", 1, "random seed")
	strikes := flag.String("strikes", "", "comma separated strikes for the smile chart (default: the reference strike)")
	out := flag.String("out", "report.json", "JSON report path")
	chartPath := flag.String("chart", "smile.png", "smile chart path, empty to skip")
	term := flag.String("term", "", "BlackScholes volatility term structure as time:vol pairs, e.g. 0.5:18,1:22")
	quiet := flag.Bool("quiet", false, "disable the progress bar")
	flag.Parse()

	set, err := params.LoadReferenceData(*envFile)
	if err != nil {
		log.Fatalf("Error loading reference data: %s", err)
	}

	optionKind, err := positions.ParseOptionKind(*kind)
	if err != nil {
		log.Fatal(err)
	}
	chartStrikes, err := parseStrikes(*strikes, set.Strike)
	if err != nil {
		log.Fatal(err)
	}

	termStructure, err := parseTermStructure(*term)
	if err != nil {
		log.Fatal(err)
	}

	opts := options{model: *model, kind: optionKind, paths: *paths, dt: *dt, seed: *seed, strikes: chartStrikes, term: termStructure}

	fmt.Printf("Forward: %.4f, Strike: %.4f, Maturity: %.4f, Volatility: %.4f\n", set.Forward, set.Strike, set.Maturity, set.Volatility)
	fmt.Printf("SABR alpha=%g beta=%g rho=%g nu=%g\n", set.SABR.Alpha, set.SABR.Beta, set.SABR.Rho, set.SABR.Nu)

	var progress models.Progress
	var p *mpb.Progress
	if !*quiet {
		p = mpb.New(mpb.WithWidth(64))
		progress = p.AddBar(int64(opts.paths),
			mpb.PrependDecorators(
				decor.Name("Paths"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	start := time.Now()
	report, err := buildReport(set, opts, progress)
	if p != nil {
		p.Wait()
	}
	if err != nil {
		log.Fatalf("Error building report: %s", err)
	}
	report.Host = hostInfo()
	report.Elapsed = time.Since(start).String()

	fmt.Printf("Black %s price: %.6f\n", opts.kind, report.Black.Price(opts.kind))
	fmt.Printf("Monte Carlo %s price (%s, %d paths): %.6f +/- %.6f\n", opts.kind, report.MonteCarlo.Model, report.MonteCarlo.Paths, report.MonteCarlo.Price, report.MonteCarlo.StdErr)
	fmt.Printf("SABR ATM vol: %.6f, implied vol at strike: %.6f\n", report.SABRATMVol, report.SABRImpliedVol)

	data, err := json.Marshal(report)
	if err != nil {
		log.Fatalf("Error marshalling report: %s", err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Error writing to file %s: %s", *out, err)
	}
	fmt.Printf("Successfully wrote report to %s\n", *out)

	if *chartPath != "" {
		caption := chart.Caption(set.SABR.Alpha, set.SABR.Beta, set.SABR.Rho, set.SABR.Nu, set.Maturity)
		if err := chart.RenderSmile(*chartPath, "Implied volatility", caption, report.Curves...); err != nil {
			log.Fatalf("Error rendering chart: %s", err)
		}
		fmt.Printf("Successfully wrote chart to %s\n", *chartPath)
	}
}

func buildReport(set params.Set, opts options, progress models.Progress) (*Report, error) {
	report := &Report{GeneratedAt: time.Now().UTC(), Params: set, Kind: opts.kind.String()}

	pricer, err := positions.NewBlackPricer(set.Market)
	if err != nil {
		return nil, fmt.Errorf("black pricer: %w", err)
	}
	report.Black = pricer.Result()
	report.Greeks = pricer.Greeks(opts.kind)

	approx, err := smile.NewApproximation(set.Forward, set.Maturity, set.SABR)
	if err != nil {
		return nil, fmt.Errorf("sabr approximation: %w", err)
	}
	if report.SABRATMVol, report.SABRImpliedVol, err = approx.AtForward(set.Strike); err != nil {
		return nil, fmt.Errorf("sabr approximation: %w", err)
	}

	forwards := smile.Grid(0.5*set.Forward, 1.5*set.Forward, curvePoints)
	atm, err := approx.ATMCurve(forwards)
	if err != nil {
		return nil, fmt.Errorf("atm curve: %w", err)
	}
	report.Curves = append(report.Curves, atm)
	for _, k := range opts.strikes {
		c, err := approx.ImpliedVolCurve(k, forwards)
		if err != nil {
			return nil, fmt.Errorf("implied vol curve K=%g: %w", k, err)
		}
		report.Curves = append(report.Curves, c)
	}

	model, err := models.NewModel(opts.model, set, models.WithTermStructure(opts.term))
	if err != nil {
		return nil, err
	}
	sim := models.NewSimulator(model, set.Forward, set.Maturity, opts.dt, opts.seed)
	payoff := positions.NewPayoff(opts.kind, set.Strike)

	est, err := probability.MonteCarloPrice(sim, payoff, opts.paths, progress)
	if err != nil {
		return nil, fmt.Errorf("monte carlo: %w", err)
	}
	report.MonteCarlo = est

	if iv, err := positions.BlackImpliedVolatility(est.Price, opts.kind, set.Forward, set.Strike, set.Maturity); err != nil {
		log.Printf("Monte Carlo price has no Black implied volatility: %s", err)
	} else {
		report.MCImpliedVol = &iv
	}

	pnl := probability.PnL(est.Payoffs, report.Black.Price(opts.kind))
	if report.VaR95, err = probability.CalculateVaR(pnl, confidenceLevel); err != nil {
		return nil, err
	}
	if report.ExpectedShortfall, err = probability.ExpectedShortfall(pnl, confidenceLevel); err != nil {
		return nil, err
	}

	return report, nil
}

func parseStrikes(raw string, fallback float64) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return []float64{fallback}, nil
	}
	var strikes []float64
	for _, field := range strings.Split(raw, ",") {
		k, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid strike %q: %w", field, err)
		}
		if err := params.Positive("strike", k); err != nil {
			return nil, err
		}
		strikes = append(strikes, k)
	}
	return strikes, nil
}

// parseTermStructure reads comma separated time:vol pairs. An empty string
// means constant volatility.
func parseTermStructure(raw string) (*models.VolatilityTermStructure, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var times, vols []float64
	for _, field := range strings.Split(raw, ",") {
		pair := strings.SplitN(strings.TrimSpace(field), ":", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid term point %q: want time:vol", field)
		}
		t, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid term time %q: %w", pair[0], err)
		}
		v, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid term vol %q: %w", pair[1], err)
		}
		times = append(times, t)
		vols = append(vols, v)
	}
	return models.NewVolatilityTermStructure(times, vols)
}

func hostInfo() HostInfo {
	var info HostInfo
	if stats, err := cpu.Info(); err == nil && len(stats) > 0 {
		info.CPUModel = stats[0].ModelName
	} else if err != nil {
		log.Printf("Error reading CPU info: %s", err)
	}
	if n, err := cpu.Counts(true); err == nil {
		info.LogicalCores = n
	}
	return info
}
