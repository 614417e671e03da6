package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFinders(t *testing.T) {
	finders := map[string]RootFinder{"Bisect": Bisect, "Brent": Brent}

	tests := []struct {
		name   string
		f      func(float64) float64
		lo, hi float64
		root   float64
	}{
		{"sqrt2", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"cubic", func(x float64) float64 { return (x - 0.3) * (x*x + 1) },
			-10, 10, 0.3},
		{"exp", func(x float64) float64 { return math.Exp(x) - 3405 },
			-10, 10, math.Log(3405)},
		{"endpoint", func(x float64) float64 { return x - 1 }, 1, 4, 1},
	}

	for name, find := range finders {
		for _, tt := range tests {
			root, err := find(tt.f, tt.lo, tt.hi)
			require.NoError(t, err, "%s(%s)", name, tt.name)
			assert.InDelta(t, tt.root, root, 1e-10, "%s(%s)", name, tt.name)
		}
	}
}

func TestRootFindersFailClosed(t *testing.T) {
	finders := map[string]RootFinder{"Bisect": Bisect, "Brent": Brent}
	noRoot := func(x float64) float64 { return x*x + 1 }

	for name, find := range finders {
		root, err := find(noRoot, -10, 10)
		assert.True(t, errors.Is(err, ErrNoSignChange), name)
		assert.True(t, math.IsNaN(root), name)

		_, err = find(noRoot, 1, -1)
		assert.True(t, errors.Is(err, ErrInvalidInterval), name)

		_, err = find(noRoot, math.Inf(-1), 1)
		assert.True(t, errors.Is(err, ErrInvalidInterval), name)

		nan := func(float64) float64 { return math.NaN() }
		_, err = find(nan, -1, 1)
		assert.True(t, errors.Is(err, ErrNoSignChange), name)
	}
}

func TestBisectIterationBudget(t *testing.T) {
	f := func(x float64) float64 { return x - math.Pi }
	_, err := Bisect(f, 0, 10, MaxIter(3))
	assert.True(t, errors.Is(err, ErrNoConvergence))

	root, err := Bisect(f, 0, 10, XTol(1e-3))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, root, 1e-3)
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name   string
		f      func(float64) float64
		lo, hi float64
		val    float64
	}{
		{"sin", math.Sin, 0, math.Pi, 2},
		{"reversed", math.Sin, math.Pi, 0, -2},
		{"poly", func(x float64) float64 { return 3*x*x - 2*x }, -1, 2, 6},
		{"sqrt", math.Sqrt, 0, 1, 2.0 / 3},
		{"inverse sqrt", func(x float64) float64 { return 1 / math.Sqrt(x) },
			0, 1, 2},
		{"empty", math.Exp, 1, 1, 0},
	}

	for _, tt := range tests {
		val, err := Integrate(tt.f, tt.lo, tt.hi, RTol(1e-8))
		require.NoError(t, err, tt.name)
		assert.InDelta(t, tt.val, val, 1e-6, tt.name)
	}
}

func TestIntegrateDefaultTolerance(t *testing.T) {
	val, err := Integrate(math.Exp, 0, 1)
	require.NoError(t, err)
	assert.InEpsilon(t, math.E-1, val, 1e-3)
}

func TestIntegrateFailures(t *testing.T) {
	_, err := Integrate(math.Sin, 0, math.Pi, RTol(1e-15), MaxEvals(30))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	var qe *QuadError
	require.True(t, errors.As(err, &qe))
	assert.InDelta(t, 2, qe.Estimate, 1e-3)
	assert.Greater(t, qe.Evals, 0)

	nan := func(float64) float64 { return math.NaN() }
	_, err = Integrate(nan, 0, 1)
	assert.True(t, errors.Is(err, ErrNoConvergence))

	_, err = Integrate(math.Sin, 0, math.Inf(1))
	assert.True(t, errors.Is(err, ErrInvalidInterval))
}

func TestIntegrateSkipsEndpoints(t *testing.T) {
	f := func(x float64) float64 {
		if x <= 0 || x >= 1 {
			panic("evaluated an endpoint")
		}
		return 1
	}
	val, err := Integrate(f, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, val, 1e-12)
}

func TestDeriv(t *testing.T) {
	n := 101
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = 2 * math.Pi * float64(i) / float64(n-1)
		ys[i] = math.Sin(xs[i])
	}

	d2 := Deriv(xs, ys, 2)
	d4 := Deriv(xs, ys, 4)
	for i := range xs {
		assert.InDelta(t, math.Cos(xs[i]), d2[i], 5e-3, "order 2, i = %d", i)
		assert.InDelta(t, math.Cos(xs[i]), d4[i], 1e-5, "order 4, i = %d", i)
	}

	out := make([]float64, n)
	d0 := Deriv(xs, ys, 0, Out(out))
	assert.Equal(t, ys, d0)
	assert.Equal(t, ys, out)

	assert.Panics(t, func() { Deriv(xs, ys, 3) })
	assert.Panics(t, func() { Deriv(xs, ys[:10], 2) })
	assert.Panics(t, func() { Deriv(xs[:4], ys[:4], 4) })
}
