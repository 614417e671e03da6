package cosmo

import (
	"fmt"

	"gonum.org/v1/gonum/unit"

	"github.com/phil-mansfield/flrw/math/calc"
)

// Age returns the time elapsed between the Big Bang and redshift z. The
// options are passed to calc.Integrate; the default relative tolerance is
// 1e-3. Age(0) is the present age of the universe.
func (c *Cosmology) Age(z float64, opts ...calc.QuadOption) (unit.Time, error) {
	a, err := RedshiftToScaleFactor(z)
	if err != nil {
		return 0, err
	}
	return c.timeBetween(0, a, opts)
}

// LookbackTime returns the time elapsed between redshift z and today.
func (c *Cosmology) LookbackTime(
	z float64, opts ...calc.QuadOption,
) (unit.Time, error) {
	a, err := RedshiftToScaleFactor(z)
	if err != nil {
		return 0, err
	}
	return c.timeBetween(a, 1, opts)
}

// timeBetween integrates dt = da / (a H(a)) from a0 to a1.
func (c *Cosmology) timeBetween(
	a0, a1 float64, opts []calc.QuadOption,
) (unit.Time, error) {
	integrand := func(a float64) float64 {
		return 1 / (a * c.hubbleEvolution(1/a-1))
	}

	t, err := calc.Integrate(integrand, a0, a1, opts...)
	if err != nil {
		return 0, fmt.Errorf("cosmo: time from a = %g to a = %g: %w",
			a0, a1, err)
	}
	return unit.Time(t/c.hubbleConstantMks()) * unit.Second, nil
}
