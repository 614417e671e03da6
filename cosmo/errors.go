package cosmo

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is wrapped by every error caused by a bad input:
	// a non-physical cosmology or a redshift <= -1.
	ErrInvalidParameter = errors.New("cosmo: invalid parameter")
	// ErrDegenerateCosmology is returned by abundance and density evaluators
	// for a cosmology without matter. It also matches ErrInvalidParameter.
	ErrDegenerateCosmology = fmt.Errorf(
		"%w: degenerate cosmology", ErrInvalidParameter,
	)
)

// ParameterError names the input which was rejected.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("cosmo: invalid %s = %g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func checkRedshift(z float64) error {
	if !finite(z) || z <= -1 {
		return &ParameterError{"z", z, "redshift must be finite and > -1"}
	}
	return nil
}

func checkScaleFactor(a float64) error {
	if !finite(a) || a <= 0 {
		return &ParameterError{"a", a, "scale factor must be finite and > 0"}
	}
	return nil
}
