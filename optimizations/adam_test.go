package optimizations

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWarmupLinear(t *testing.T) {
	require.InDelta(t, 0.0, WarmupLinear(0, 0.1), 1e-12)
	require.InDelta(t, 0.5, WarmupLinear(0.05, 0.1), 1e-12)
	require.InDelta(t, 0.9, WarmupLinear(0.1, 0.1), 1e-12) // ramp done, decay starts
	require.InDelta(t, 0.5, WarmupLinear(0.5, 0.1), 1e-12)
	require.InDelta(t, 0.0, WarmupLinear(1.0, 0.1), 1e-12)
}

func TestWarmupLinearNoWarmup(t *testing.T) {
	require.InDelta(t, 1.0, WarmupLinear(0, 0), 1e-12)
	require.InDelta(t, 0.75, WarmupLinear(0.25, 0), 1e-12)
}

func TestAdamUpdateMovesAgainstGradient(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	g := mat.NewDense(2, 2, []float64{1, -1, 1, -1})
	m := ZerosLike(p)
	v := ZerosLike(p)

	AdamUpdateInPlace(p, g, m, v, 1, 0.1, 0.9, 0.999, 1e-8, 0)

	require.Less(t, p.At(0, 0), 1.0)    // positive grad decreases the param
	require.Greater(t, p.At(0, 1), 1.0) // negative grad increases it
}

func TestAdamUpdateWeightDecayShrinksParams(t *testing.T) {
	p := mat.NewDense(1, 1, []float64{2})
	g := mat.NewDense(1, 1, []float64{0})
	m := ZerosLike(p)
	v := ZerosLike(p)

	AdamUpdateInPlace(p, g, m, v, 1, 0.1, 0.9, 0.999, 1e-8, 0.01)
	require.Less(t, p.At(0, 0), 2.0)
}

func TestAdamUpdateShapeMismatchPanics(t *testing.T) {
	p := mat.NewDense(2, 2, nil)
	g := mat.NewDense(2, 3, nil)
	m := ZerosLike(p)
	v := ZerosLike(p)
	require.Panics(t, func() {
		AdamUpdateInPlace(p, g, m, v, 1, 0.1, 0.9, 0.999, 1e-8, 0)
	})
}
