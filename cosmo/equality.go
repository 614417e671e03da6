package cosmo

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/flrw/math/calc"
)

// Equality identifies a pair of components whose abundances cross.
type Equality int

const (
	MatterRadiation Equality = iota
	MatterDarkEnergy
)

func (eq Equality) String() string {
	switch eq {
	case MatterRadiation:
		return "matter-radiation"
	case MatterDarkEnergy:
		return "matter-dark-energy"
	}
	return fmt.Sprintf("Equality(%d)", int(eq))
}

// Diagnostic records an equality redshift which New could not find.
type Diagnostic struct {
	Equality Equality
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("could not find the %s equality redshift, using "+
		"z = %g: %v", d.Equality, EqualitySentinel, d.Err)
}

// equalitySolution is either a redshift or the reason it couldn't be found.
type equalitySolution struct {
	z   float64
	err error
}

func (s equalitySolution) value() float64 {
	if s.err != nil {
		return EqualitySentinel
	}
	return s.z
}

// solveEquality searches for the redshift where the matter abundance
// crosses the other component of eq. The search runs over y = ln(1 + z).
func (c *Cosmology) solveEquality(eq Equality, p *params) equalitySolution {
	other := Radiation
	if eq == MatterDarkEnergy {
		other = DarkEnergy
	}

	crossing := func(y float64) float64 {
		z := math.Expm1(y)
		return c.omega(other, z) - c.omega(Matter, z)
	}

	y, err := p.finder(crossing, p.lo, p.hi, calc.XTol(p.tol))
	if err != nil {
		return equalitySolution{err: fmt.Errorf("%s equality: %w", eq, err)}
	}
	return equalitySolution{z: math.Expm1(y)}
}

// ZEqMatterRadiation returns the redshift at which matter and radiation
// have equal densities, or EqualitySentinel if there is none.
func (c *Cosmology) ZEqMatterRadiation() float64 { return c.zEqMR }

// ZEqMatterDarkEnergy returns the redshift at which matter and dark energy
// have equal densities, or EqualitySentinel if there is none.
func (c *Cosmology) ZEqMatterDarkEnergy() float64 { return c.zEqLM }

// AEqMatterRadiation is the scale factor of ZEqMatterRadiation. If that
// redshift wasn't found it is 1/(1 + EqualitySentinel) = 1, which looks like
// an equality today; check Diagnostics to tell the two apart.
func (c *Cosmology) AEqMatterRadiation() float64 {
	return 1 / (1 + c.zEqMR)
}

// AEqMatterDarkEnergy is the scale factor of ZEqMatterDarkEnergy. It is 1
// when the redshift wasn't found, as with AEqMatterRadiation.
func (c *Cosmology) AEqMatterDarkEnergy() float64 {
	return 1 / (1 + c.zEqLM)
}
