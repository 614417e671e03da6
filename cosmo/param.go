package cosmo

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// ScaleFactorToRedshift converts a scale factor a > 0 into a redshift.
func ScaleFactorToRedshift(a float64) (float64, error) {
	if err := checkScaleFactor(a); err != nil {
		return math.NaN(), err
	}
	return 1/a - 1, nil
}

// RedshiftToScaleFactor converts a redshift z > -1 into a scale factor.
func RedshiftToScaleFactor(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return math.NaN(), err
	}
	return 1 / (1 + z), nil
}

// hubbleEvolution2 calculates E(z)**2 = (H(z)/H0)**2 = OmegaM (1+z)**3 +
// OmegaR (1+z)**4 + OmegaL.
func (c *Cosmology) hubbleEvolution2(z float64) float64 {
	x := 1 + z
	x3 := x * x * x
	e2 := c.omegaL0
	if c.omegaM0 != 0 {
		e2 += c.omegaM0 * x3
	}
	if c.omegaR0 != 0 {
		e2 += c.omegaR0 * x3 * x
	}
	return e2
}

func (c *Cosmology) hubbleEvolution(z float64) float64 {
	return math.Sqrt(c.hubbleEvolution2(z))
}

// hubbleConstantMks is H0 in s^-1.
func (c *Cosmology) hubbleConstantMks() float64 {
	return c.HubbleConstant() * KmMks / MpcMks
}

// HubbleConstant returns H0 in km/s/Mpc.
func (c *Cosmology) HubbleConstant() float64 { return 100 * c.h }

// HubbleEvolution returns E(z) = H(z)/H0.
func (c *Cosmology) HubbleEvolution(z float64) (float64, error) {
	if err := checkRedshift(z); err != nil {
		return math.NaN(), err
	}
	return c.hubbleEvolution(z), nil
}

// HubbleRate returns H(z) in km/s/Mpc.
func (c *Cosmology) HubbleRate(z float64) (float64, error) {
	e, err := c.HubbleEvolution(z)
	if err != nil {
		return math.NaN(), err
	}
	return c.HubbleConstant() * e, nil
}

// HubbleTime returns 1/H0.
func (c *Cosmology) HubbleTime() unit.Time {
	return unit.Time(1/c.hubbleConstantMks()) * unit.Second
}

// TemperatureCMB returns the CMB temperature at redshift z.
func (c *Cosmology) TemperatureCMB(z float64) (unit.Temperature, error) {
	if err := checkRedshift(z); err != nil {
		return unit.Temperature(math.NaN()), err
	}
	return unit.Temperature(c.tCMB0*(1+z)) * unit.Kelvin, nil
}

// RhoCritical calculates the critical density of the universe at z in
// cosmological units, h^2 MSun / Mpc^3. This shows up (among other places)
// in halo definitions and in particle masses of N-body simulations.
func (c *Cosmology) RhoCritical(z float64) (float64, error) {
	rho, err := c.CriticalDensity(z)
	if err != nil {
		return math.NaN(), err
	}
	return rho * math.Pow(MpcMks, 3) / MSunMks / (c.h * c.h), nil
}

// RhoAverage calculates the average density of matter in the universe at z
// in cosmological units, h^2 MSun / Mpc^3.
func (c *Cosmology) RhoAverage(z float64) (float64, error) {
	rho, err := c.MatterDensity(z)
	if err != nil {
		return math.NaN(), err
	}
	return rho * math.Pow(MpcMks, 3) / MSunMks / (c.h * c.h), nil
}
