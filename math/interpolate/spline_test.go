package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func TestSplineLinear(t *testing.T) {
	sp := NewSpline([]float64{0, 1, 2, 3, 4}, []float64{2, 3, 4, 5, 6})
	for _, x := range linspace(0, 4, 17) {
		assert.InDelta(t, x+2, sp.Eval(x), 1e-12, "x = %g", x)
		assert.InDelta(t, 1, sp.Deriv(x, 1), 1e-12, "x = %g", x)
	}
}

func TestSplineSmooth(t *testing.T) {
	xs := linspace(0, math.Pi, 200)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = math.Sin(xs[i])
	}
	sp := NewSpline(xs, ys)

	test := linspace(0.1, math.Pi-0.1, 37)
	for _, x := range test {
		assert.InDelta(t, math.Sin(x), sp.Eval(x), 1e-6, "x = %g", x)
		assert.InDelta(t, math.Cos(x), sp.Deriv(x, 1), 1e-4, "x = %g", x)
	}
}

func TestSplineDecreasing(t *testing.T) {
	xs := []float64{4, 3, 2, 1, 0}
	ys := []float64{16, 9, 4, 1, 0}
	sp := NewSpline(xs, ys)

	lo, hi := sp.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, 16.0, sp.Eval(4))
	assert.Equal(t, 0.0, sp.Eval(0))
	assert.InDelta(t, 2.25, sp.Eval(1.5), 0.2)
	assert.True(t, sp.Contains(2.5))
	assert.False(t, sp.Contains(-0.5))
}

func TestSplinePanics(t *testing.T) {
	assert.Panics(t, func() { NewSpline([]float64{0, 1}, []float64{0, 1}) })
	assert.Panics(t, func() {
		NewSpline([]float64{0, 1, 2}, []float64{0, 1})
	})
	assert.Panics(t, func() {
		NewSpline([]float64{0, 2, 1}, []float64{0, 1, 2})
	})

	sp := NewSpline([]float64{0, 1, 2}, []float64{0, 1, 2})
	assert.Panics(t, func() { sp.Eval(3) })
	require.Same(t, sp, sp.Ref())
}

func TestTriDiag(t *testing.T) {
	// | 2 1 0 |   | 1 |   | 4 |
	// | 1 2 1 | * | 2 | = | 8 |
	// | 0 1 2 |   | 3 |   | 8 |
	us := make([]float64, 3)
	TriDiagAt([]float64{0, 1, 1}, []float64{2, 2, 2}, []float64{1, 1, 0},
		[]float64{4, 8, 8}, us)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, us, 1e-12)
}
