package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcdannyboy/sabrmc/params"
	"github.com/bcdannyboy/sabrmc/smile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurves(t *testing.T) []smile.Curve {
	t.Helper()
	a, err := smile.NewApproximation(100, 1, params.SABR{Alpha: 2, Beta: 0.5, Rho: -0.3, Nu: 0.4})
	require.NoError(t, err)

	forwards := smile.Grid(60, 140, 41)
	atm, err := a.ATMCurve(forwards)
	require.NoError(t, err)
	k, err := a.ImpliedVolCurve(100, forwards)
	require.NoError(t, err)
	return []smile.Curve{atm, k}
}

func TestRenderSmile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smile.png")
	require.NoError(t, RenderSmile(path, "Implied volatility", Caption(2, 0.5, -0.3, 0.4, 1), testCurves(t)...))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewSmilePlot(t *testing.T) {
	p, err := NewSmilePlot("Implied volatility", "", testCurves(t)...)
	require.NoError(t, err)
	assert.Equal(t, "Implied volatility", p.Title.Text)

	_, err = NewSmilePlot("empty", "")
	assert.Error(t, err)
}

func TestCaption(t *testing.T) {
	assert.Equal(t, "Parameters : alpha=2, beta=0.5, rho=-0.3, nu=0.4, t_ex = 1", Caption(2, 0.5, -0.3, 0.4, 1))
}
