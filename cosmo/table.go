package cosmo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit"

	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/math/interpolate"
)

// AgeTable tabulates the age of a cosmology on a grid uniform in ln(1 + z)
// and interpolates it with cubic splines. It answers Age, LookbackTime and
// the inverse, Redshift, without re-integrating. An AgeTable is read-only
// and safe for concurrent use.
type AgeTable struct {
	c    *Cosmology
	zMax float64
	age0 float64
	age  interpolate.Interpolator // ln(1 + z) -> age [s]
	lnx  interpolate.Interpolator // age [s] -> ln(1 + z)
}

// NewAgeTable tabulates ages at n >= 3 redshifts in [0, zMax]. The options
// are passed to calc.Integrate for every segment.
func NewAgeTable(
	c *Cosmology, zMax float64, n int, opts ...calc.QuadOption,
) (*AgeTable, error) {
	if err := checkRedshift(zMax); err != nil {
		return nil, err
	} else if zMax <= 0 {
		return nil, &ParameterError{"zMax", zMax, "must be positive"}
	} else if n < 3 {
		return nil, &ParameterError{"n", float64(n), "must be at least 3"}
	}

	lnxs := floats.Span(make([]float64, n), 0, math.Log1p(zMax))
	scales := make([]float64, n)
	for i := range lnxs {
		scales[i] = math.Exp(-lnxs[i])
	}

	// Integrate from the Big Bang to the earliest point, then segment by
	// segment towards today.
	ages := make([]float64, n)
	t, err := c.timeBetween(0, scales[n-1], opts)
	if err != nil {
		return nil, err
	}
	ages[n-1] = float64(t)
	for i := n - 2; i >= 0; i-- {
		dt, err := c.timeBetween(scales[i+1], scales[i], opts)
		if err != nil {
			return nil, err
		}
		ages[i] = ages[i+1] + float64(dt)
	}

	return &AgeTable{
		c: c, zMax: zMax, age0: ages[0],
		age: interpolate.NewSpline(lnxs, ages),
		lnx: interpolate.NewSpline(ages, lnxs),
	}, nil
}

// Cosmology returns the cosmology the table was built from.
func (tab *AgeTable) Cosmology() *Cosmology { return tab.c }

// MaxRedshift returns the largest redshift in the table.
func (tab *AgeTable) MaxRedshift() float64 { return tab.zMax }

// Age returns the interpolated age at z, 0 <= z <= MaxRedshift().
func (tab *AgeTable) Age(z float64) (unit.Time, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	lnx := math.Log1p(z)
	if !tab.age.Contains(lnx) {
		return 0, &ParameterError{"z", z, "outside of the age table"}
	}
	return unit.Time(tab.age.Eval(lnx)) * unit.Second, nil
}

// TimeDerivative returns dt/dz at z, from the derivative of the age spline.
func (tab *AgeTable) TimeDerivative(z float64) (unit.Time, error) {
	if err := checkRedshift(z); err != nil {
		return 0, err
	}
	lnx := math.Log1p(z)
	if !tab.age.Contains(lnx) {
		return 0, &ParameterError{"z", z, "outside of the age table"}
	}
	return unit.Time(tab.age.Deriv(lnx, 1)/(1+z)) * unit.Second, nil
}

// LookbackTime returns the interpolated lookback time at z.
func (tab *AgeTable) LookbackTime(z float64) (unit.Time, error) {
	t, err := tab.Age(z)
	if err != nil {
		return 0, err
	}
	return unit.Time(tab.age0) - t, nil
}

// Redshift returns the redshift at which the universe had age t.
func (tab *AgeTable) Redshift(t unit.Time) (float64, error) {
	ft := float64(t)
	if !finite(ft) || !tab.lnx.Contains(ft) {
		return math.NaN(), &ParameterError{
			"t", ft, "outside of the age table",
		}
	}
	return math.Expm1(tab.lnx.Eval(ft)), nil
}
