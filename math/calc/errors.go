package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSignChange is returned by root finders when the function has the
	// same sign at both ends of the search bracket.
	ErrNoSignChange = errors.New("calc: no sign change in bracket")
	// ErrNoConvergence is returned when an iterative routine exhausts its
	// budget before meeting its tolerance.
	ErrNoConvergence = errors.New("calc: failed to converge")
	// ErrInvalidInterval is returned for NaN, infinite, or inverted bounds.
	ErrInvalidInterval = errors.New("calc: invalid interval")
)

// QuadError reports a quadrature that ran out of function evaluations. The
// best estimate found so far is kept so callers can decide what to do with
// it, but it is never returned as a plain value.
type QuadError struct {
	Estimate, AbsErr float64
	Evals            int
}

func (e *QuadError) Error() string {
	return fmt.Sprintf(
		"calc: quadrature stopped after %d evaluations with estimate %g "+
			"+/- %g", e.Evals, e.Estimate, e.AbsErr,
	)
}

func (e *QuadError) Unwrap() error { return ErrNoConvergence }
