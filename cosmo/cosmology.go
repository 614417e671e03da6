/*package cosmo evaluates the background expansion history of flat FLRW
cosmologies: densities, abundances, the Hubble rate, and cosmic time.

A Cosmology is built once with New and is read-only afterwards, so it can be
shared between goroutines freely. Every evaluator is a method on *Cosmology.
The package-level functions of the same names evaluate the Planck 2018
cosmology, Planck18.
*/
package cosmo

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/calc"
)

const (
	// DefaultTCMB is the present-day CMB temperature in Kelvin.
	DefaultTCMB = 2.72548
	// DefaultNEff is the effective number of neutrino species.
	DefaultNEff = 3.04
	// EqualitySentinel is stored in place of an equality redshift which
	// could not be found.
	EqualitySentinel = 0.0
)

// Planck18 is the Planck 2018 best-fit cosmology. It is the cosmology used
// by the package-level evaluators.
var Planck18 = MustNew(0.6736, 0.26447, 0.04930)

// Cosmology holds the primary and derived parameters of a flat FLRW
// cosmology.
type Cosmology struct {
	h, omegaCDM0, omegaB0, tCMB0, nEff float64

	omegaGamma0, omegaNu0, omegaR0, omegaM0, omegaL0 float64
	rhoCrit0                                         float64

	zEqMR, zEqLM float64
	diagnostics  []Diagnostic
}

type params struct {
	tCMB, nEff float64
	finder     calc.RootFinder
	lo, hi     float64
	tol        float64
	log        logging.Logger
}

type internalOption func(*params)

// Option tunes a call to New.
type Option internalOption

// TCMB sets the present-day CMB temperature in Kelvin.
func TCMB(k float64) Option {
	return func(p *params) { p.tCMB = k }
}

// NEff sets the effective number of neutrino species.
func NEff(n float64) Option {
	return func(p *params) { p.nEff = n }
}

// Finder sets the root finder used for the equality redshifts. The default
// is calc.Bisect.
func Finder(f calc.RootFinder) Option {
	return func(p *params) { p.finder = f }
}

// Bracket sets the search interval in ln(1 + z) used for the equality
// redshifts. The default is [-10, 10].
func Bracket(lo, hi float64) Option {
	return func(p *params) { p.lo, p.hi = lo, hi }
}

// RootTolerance sets the absolute tolerance in ln(1 + z) of the equality
// redshifts. The default is 1e-12.
func RootTolerance(tol float64) Option {
	return func(p *params) { p.tol = tol }
}

// Logger sets the logger construction diagnostics are reported to. By
// default nothing is logged.
func Logger(log logging.Logger) Option {
	return func(p *params) { p.log = log }
}

func (p *params) loadOptions(opts []Option) {
	p.tCMB, p.nEff = DefaultTCMB, DefaultNEff
	p.finder = calc.Bisect
	p.lo, p.hi, p.tol = -10, 10, 1e-12
	p.log = logging.Nop{}
	for _, opt := range opts {
		opt(p)
	}
}

// New creates a flat cosmology from the dimensionless Hubble parameter h
// (H0 = 100 h km/s/Mpc) and the present-day cold dark matter and baryon
// density parameters. The dark energy density is fixed by flatness.
//
// Invalid parameters return an error wrapping ErrInvalidParameter. An
// equality redshift which cannot be found does not: the field is set to
// EqualitySentinel and the failure is recorded in Diagnostics.
func New(h, omegaCDM, omegaB float64, opts ...Option) (*Cosmology, error) {
	p := new(params)
	p.loadOptions(opts)

	if err := validate(h, omegaCDM, omegaB, p); err != nil {
		return nil, err
	}

	c := &Cosmology{
		h: h, omegaCDM0: omegaCDM, omegaB0: omegaB,
		tCMB0: p.tCMB, nEff: p.nEff,
	}

	c.omegaGamma0 = photonDensityCoeff * math.Pow(c.tCMB0, 4) / (h * h)
	c.omegaNu0 = c.nEff * c.omegaGamma0 * (7.0 / 8) * math.Pow(4.0/11, 4.0/3)
	c.omegaR0 = c.omegaGamma0 + c.omegaNu0
	c.omegaM0 = c.omegaCDM0 + c.omegaB0
	c.omegaL0 = 1 - c.omegaM0 - c.omegaR0
	if c.omegaL0 < 0 {
		return nil, &ParameterError{
			"OmegaDarkEnergy0", c.omegaL0,
			"flatness requires Omega_m0 + Omega_r0 <= 1",
		}
	}

	h0 := c.hubbleConstantMks()
	c.rhoCrit0 = 3 * h0 * h0 / (8 * math.Pi * GMks)

	for _, eq := range []Equality{MatterRadiation, MatterDarkEnergy} {
		sol := c.solveEquality(eq, p)
		if sol.err != nil {
			d := Diagnostic{Equality: eq, Err: sol.err}
			c.diagnostics = append(c.diagnostics, d)
			p.log.Warn("equality redshift not found",
				logging.String("equality", eq.String()),
				logging.Float64("sentinel", EqualitySentinel),
				logging.Err(sol.err))
		}

		switch eq {
		case MatterRadiation:
			c.zEqMR = sol.value()
		case MatterDarkEnergy:
			c.zEqLM = sol.value()
		}
	}

	p.log.Debug("constructed cosmology",
		logging.Float64("h", c.h),
		logging.Float64("Omega_m0", c.omegaM0),
		logging.Float64("Omega_r0", c.omegaR0),
		logging.Float64("Omega_de0", c.omegaL0),
		logging.Float64("z_eq_mr", c.zEqMR),
		logging.Float64("z_eq_de", c.zEqLM))

	return c, nil
}

// MustNew is like New but panics if the parameters are invalid.
func MustNew(h, omegaCDM, omegaB float64, opts ...Option) *Cosmology {
	c, err := New(h, omegaCDM, omegaB, opts...)
	if err != nil {
		panic(err.Error())
	}
	return c
}

func validate(h, omegaCDM, omegaB float64, p *params) error {
	switch {
	case !finite(h) || h <= 0:
		return &ParameterError{"h", h, "must be finite and positive"}
	case !finite(omegaCDM) || omegaCDM < 0:
		return &ParameterError{"OmegaCDM0", omegaCDM,
			"must be finite and non-negative"}
	case !finite(omegaB) || omegaB < 0:
		return &ParameterError{"OmegaBaryon0", omegaB,
			"must be finite and non-negative"}
	case omegaCDM+omegaB > 1:
		return &ParameterError{"OmegaMatter0", omegaCDM + omegaB,
			"must not exceed 1 in a flat cosmology"}
	case !finite(p.tCMB) || p.tCMB < 0:
		return &ParameterError{"TCMB", p.tCMB,
			"must be finite and non-negative"}
	case !finite(p.nEff) || p.nEff < 0:
		return &ParameterError{"NEff", p.nEff,
			"must be finite and non-negative"}
	case p.finder == nil:
		return fmt.Errorf("%w: nil root finder", ErrInvalidParameter)
	case !finite(p.lo) || !finite(p.hi) || p.lo >= p.hi:
		return fmt.Errorf("%w: equality bracket [%g, %g]",
			ErrInvalidParameter, p.lo, p.hi)
	case !(p.tol > 0):
		return &ParameterError{"RootTolerance", p.tol, "must be positive"}
	}
	return nil
}

// H100 returns h, the Hubble constant in units of 100 km/s/Mpc.
func (c *Cosmology) H100() float64 { return c.h }

// OmegaCDM0 returns the present-day cold dark matter density parameter.
func (c *Cosmology) OmegaCDM0() float64 { return c.omegaCDM0 }

// OmegaBaryon0 returns the present-day baryon density parameter.
func (c *Cosmology) OmegaBaryon0() float64 { return c.omegaB0 }

// TCMB0 returns the present-day CMB temperature in Kelvin.
func (c *Cosmology) TCMB0() float64 { return c.tCMB0 }

// NEff returns the effective number of neutrino species.
func (c *Cosmology) NEff() float64 { return c.nEff }

// OmegaPhoton0 returns the present-day photon density parameter.
func (c *Cosmology) OmegaPhoton0() float64 { return c.omegaGamma0 }

// OmegaNeutrino0 returns the present-day neutrino density parameter.
func (c *Cosmology) OmegaNeutrino0() float64 { return c.omegaNu0 }

// OmegaRadiation0 returns the present-day radiation density parameter,
// photons plus neutrinos.
func (c *Cosmology) OmegaRadiation0() float64 { return c.omegaR0 }

// OmegaMatter0 returns the present-day matter density parameter, CDM plus
// baryons.
func (c *Cosmology) OmegaMatter0() float64 { return c.omegaM0 }

// OmegaDarkEnergy0 returns the present-day dark energy density parameter,
// fixed by flatness.
func (c *Cosmology) OmegaDarkEnergy0() float64 { return c.omegaL0 }

// RhoCritical0 returns the present-day critical density in kg/m^3.
func (c *Cosmology) RhoCritical0() float64 { return c.rhoCrit0 }

// Diagnostics returns the non-fatal problems encountered by New.
func (c *Cosmology) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

func (c *Cosmology) String() string {
	return fmt.Sprintf(
		"Cosmology{h: %g, Omega_cdm0: %g, Omega_b0: %g, T_CMB0: %g K, "+
			"N_eff: %g}", c.h, c.omegaCDM0, c.omegaB0, c.tCMB0, c.nEff,
	)
}
