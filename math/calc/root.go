package calc

import (
	"fmt"
	"math"
)

type rootParams struct {
	xtol    float64
	maxIter int
}

type internalRootOption func(*rootParams)

// RootOption tunes a call to Bisect or Brent.
type RootOption internalRootOption

// XTol sets the absolute tolerance on the root's location. The default is
// 1e-12.
func XTol(tol float64) RootOption {
	return func(p *rootParams) { p.xtol = tol }
}

// MaxIter sets the iteration budget. The default is 200.
func MaxIter(n int) RootOption {
	return func(p *rootParams) { p.maxIter = n }
}

func (p *rootParams) loadOptions(opts []RootOption) {
	p.xtol, p.maxIter = 1e-12, 200
	for _, opt := range opts {
		opt(p)
	}
}

// RootFinder finds a zero of f inside [lo, hi]. Implementations must fail
// with ErrNoSignChange instead of guessing when f(lo) and f(hi) have the
// same sign.
type RootFinder func(
	f func(float64) float64, lo, hi float64, opts ...RootOption,
) (float64, error)

var (
	_ RootFinder = Bisect
	_ RootFinder = Brent
)

// bracket evaluates f at both ends of [lo, hi] and checks that they
// straddle zero.
func bracket(f func(float64) float64, lo, hi float64) (flo, fhi float64, err error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) ||
		math.IsInf(hi, 0) || lo >= hi {
		return 0, 0, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, lo, hi)
	}

	flo, fhi = f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return flo, fhi, fmt.Errorf(
			"%w: f(%g) = %g, f(%g) = %g", ErrNoSignChange, lo, flo, hi, fhi,
		)
	}
	if flo != 0 && fhi != 0 && (flo > 0) == (fhi > 0) {
		return flo, fhi, fmt.Errorf(
			"%w: f(%g) = %g, f(%g) = %g", ErrNoSignChange, lo, flo, hi, fhi,
		)
	}
	return flo, fhi, nil
}

// Bisect finds a root of f in [lo, hi] by repeatedly halving the bracket.
func Bisect(
	f func(float64) float64, lo, hi float64, opts ...RootOption,
) (float64, error) {
	p := new(rootParams)
	p.loadOptions(opts)

	flo, fhi, err := bracket(f, lo, hi)
	if err != nil {
		return math.NaN(), err
	}
	if flo == 0 {
		return lo, nil
	} else if fhi == 0 {
		return hi, nil
	}

	for i := 0; i < p.maxIter; i++ {
		mid := lo + (hi-lo)/2
		if hi-lo <= 2*p.xtol {
			return mid, nil
		}

		fmid := f(mid)
		if fmid == 0 {
			return mid, nil
		}
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}

	return math.NaN(), fmt.Errorf(
		"%w: bisection bracket is still [%g, %g] after %d iterations",
		ErrNoConvergence, lo, hi, p.maxIter,
	)
}

// Brent finds a root of f in [lo, hi] using Brent's method: inverse
// quadratic interpolation and secant steps, falling back to bisection
// whenever they stop shrinking the bracket quickly enough.
func Brent(
	f func(float64) float64, lo, hi float64, opts ...RootOption,
) (float64, error) {
	p := new(rootParams)
	p.loadOptions(opts)

	fa, fb, err := bracket(f, lo, hi)
	if err != nil {
		return math.NaN(), err
	}
	a, b := lo, hi
	if fa == 0 {
		return a, nil
	} else if fb == 0 {
		return b, nil
	}

	c, fc := b, fb
	var d, e float64
	for i := 0; i < p.maxIter; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*epsilon*math.Abs(b) + 0.5*p.xtol
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var num, den float64
			if a == c {
				num = 2 * m * s
				den = 1 - s
			} else {
				q, r := fa/fc, fb/fc
				num = s * (2*m*q*(q-r) - (b-a)*(r-1))
				den = (q - 1) * (r - 1) * (s - 1)
			}
			if num > 0 {
				den = -den
			} else {
				num = -num
			}

			if 2*num < math.Min(3*m*den-math.Abs(tol*den), math.Abs(e*den)) {
				e = d
				d = num / den
			} else {
				d, e = m, m
			}
		} else {
			d, e = m, m
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)
	}

	return math.NaN(), fmt.Errorf(
		"%w: Brent's method stopped at %g after %d iterations",
		ErrNoConvergence, b, p.maxIter,
	)
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16
