package cosmo

import (
	"fmt"
	"math"
)

// Component is one of the fluids which make up the cosmology.
type Component int

const (
	Matter Component = iota
	CDM
	Baryons
	Radiation
	Photons
	Neutrinos
	DarkEnergy
)

// Components lists every Component.
var Components = []Component{
	Matter, CDM, Baryons, Radiation, Photons, Neutrinos, DarkEnergy,
}

func (comp Component) String() string {
	switch comp {
	case Matter:
		return "matter"
	case CDM:
		return "cold dark matter"
	case Baryons:
		return "baryons"
	case Radiation:
		return "radiation"
	case Photons:
		return "photons"
	case Neutrinos:
		return "neutrinos"
	case DarkEnergy:
		return "dark energy"
	}
	return fmt.Sprintf("Component(%d)", int(comp))
}

// exponent is p in rho(z) = rho(0) (1 + z)**p. Baryons are matter-like.
func (comp Component) exponent() int {
	switch comp {
	case Matter, CDM, Baryons:
		return 3
	case Radiation, Photons, Neutrinos:
		return 4
	}
	return 0
}

func (c *Cosmology) omega0(comp Component) float64 {
	switch comp {
	case Matter:
		return c.omegaM0
	case CDM:
		return c.omegaCDM0
	case Baryons:
		return c.omegaB0
	case Radiation:
		return c.omegaR0
	case Photons:
		return c.omegaGamma0
	case Neutrinos:
		return c.omegaNu0
	case DarkEnergy:
		return c.omegaL0
	}
	panic(fmt.Sprintf("Unknown component %d.", int(comp)))
}

// scaling returns (1 + z)**p for the component.
func (comp Component) scaling(z float64) float64 {
	x := 1 + z
	switch comp.exponent() {
	case 3:
		return x * x * x
	case 4:
		return x * x * x * x
	}
	return 1
}

// omega is the unchecked abundance fraction. Above z = 0 the numerator and
// E(z)^2 are both divided by (1 + z)**4 so that neither overflows.
func (c *Cosmology) omega(comp Component, z float64) float64 {
	x := 1 + z
	if x <= 1 {
		return c.omega0(comp) * comp.scaling(z) / c.hubbleEvolution2(z)
	}

	num := c.omega0(comp)
	switch comp.exponent() {
	case 3:
		num /= x
	case 0:
		num = num / x / x / x / x
	}
	den := c.omegaM0/x + c.omegaR0 + c.omegaL0/x/x/x/x
	return num / den
}

// checkDensity validates the inputs shared by every abundance and density
// evaluator.
func (c *Cosmology) checkDensity(comp Component, z float64) error {
	if comp < Matter || comp > DarkEnergy {
		return fmt.Errorf("%w: unknown component %d",
			ErrInvalidParameter, int(comp))
	}
	if err := checkRedshift(z); err != nil {
		return err
	}
	if c.omegaM0 == 0 {
		return fmt.Errorf("%w: Omega_m0 = 0", ErrDegenerateCosmology)
	}
	if !(c.hubbleEvolution2(z) > 0) {
		return fmt.Errorf("%w: E(z)^2 = %g at z = %g",
			ErrDegenerateCosmology, c.hubbleEvolution2(z), z)
	}
	return nil
}

// Omega returns the abundance fraction of comp at redshift z: its density
// divided by the critical density at z.
func (c *Cosmology) Omega(comp Component, z float64) (float64, error) {
	if err := c.checkDensity(comp, z); err != nil {
		return math.NaN(), err
	}
	return c.omega(comp, z), nil
}

// Density returns the physical density of comp at redshift z in kg/m^3.
func (c *Cosmology) Density(comp Component, z float64) (float64, error) {
	if err := c.checkDensity(comp, z); err != nil {
		return math.NaN(), err
	}
	rho0 := c.omega0(comp) * c.rhoCrit0
	if rho0 == 0 {
		return 0, nil
	}
	return rho0 * comp.scaling(z), nil
}

// CriticalDensity returns the critical density at redshift z in kg/m^3.
func (c *Cosmology) CriticalDensity(z float64) (float64, error) {
	if err := c.checkDensity(Matter, z); err != nil {
		return math.NaN(), err
	}
	return c.rhoCrit0 * c.hubbleEvolution2(z), nil
}

func (c *Cosmology) RadiationDensity(z float64) (float64, error) {
	return c.Density(Radiation, z)
}

func (c *Cosmology) PhotonDensity(z float64) (float64, error) {
	return c.Density(Photons, z)
}

func (c *Cosmology) NeutrinoDensity(z float64) (float64, error) {
	return c.Density(Neutrinos, z)
}

func (c *Cosmology) MatterDensity(z float64) (float64, error) {
	return c.Density(Matter, z)
}

func (c *Cosmology) CDMDensity(z float64) (float64, error) {
	return c.Density(CDM, z)
}

func (c *Cosmology) BaryonDensity(z float64) (float64, error) {
	return c.Density(Baryons, z)
}

// DarkEnergyDensity is constant in z.
func (c *Cosmology) DarkEnergyDensity(z float64) (float64, error) {
	return c.Density(DarkEnergy, z)
}

func (c *Cosmology) OmegaRadiation(z float64) (float64, error) {
	return c.Omega(Radiation, z)
}

func (c *Cosmology) OmegaPhoton(z float64) (float64, error) {
	return c.Omega(Photons, z)
}

func (c *Cosmology) OmegaNeutrino(z float64) (float64, error) {
	return c.Omega(Neutrinos, z)
}

func (c *Cosmology) OmegaMatter(z float64) (float64, error) {
	return c.Omega(Matter, z)
}

func (c *Cosmology) OmegaCDM(z float64) (float64, error) {
	return c.Omega(CDM, z)
}

// OmegaBaryon scales like the other matter components, (1 + z)**3.
func (c *Cosmology) OmegaBaryon(z float64) (float64, error) {
	return c.Omega(Baryons, z)
}

func (c *Cosmology) OmegaDarkEnergy(z float64) (float64, error) {
	return c.Omega(DarkEnergy, z)
}
