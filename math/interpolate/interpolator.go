/*package interpolate provides routines for creating smooth analytic functions
through tabulated data.
*/
package interpolate

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// Deriv evaluates the derivative of the given order at x.
	Deriv(x float64, order int) float64
	// Bounds returns the range of x values the interpolator accepts.
	Bounds() (lo, hi float64)
	// Contains returns true if x is within Bounds.
	Contains(x float64) bool
	// Ref returns an interpolator that is safe to use from another
	// goroutine.
	Ref() Interpolator
}

var _ Interpolator = &Spline{}
