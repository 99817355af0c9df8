// Package chart renders implied-volatility curves to image files.
package chart

import (
	"fmt"

	"github.com/bcdannyboy/sabrmc/smile"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 6 * vg.Inch
)

// NewSmilePlot draws the curves on one set of axes. The ATM backbone is
// dashed, fixed-strike curves are solid.
func NewSmilePlot(title, caption string, curves ...smile.Curve) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Forward"
	p.Y.Label.Text = "Implied volatility"
	if caption != "" {
		p.X.Label.Text = "Forward\n" + caption
	}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		line, err := plotter.NewLine(c)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", c.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		if c.ATM {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}

		p.Add(line)
		p.Legend.Add(c.Label, line)
	}
	p.Legend.Top = true

	return p, nil
}

// RenderSmile saves the plot; the format follows the file extension.
func RenderSmile(path, title, caption string, curves ...smile.Curve) error {
	p, err := NewSmilePlot(title, caption, curves...)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// Caption formats the SABR parameters shown under the chart.
func Caption(alpha, beta, rho, nu, maturity float64) string {
	return fmt.Sprintf("Parameters : alpha=%g, beta=%g, rho=%g, nu=%g, t_ex = %g", alpha, beta, rho, nu, maturity)
}
