package cmd

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/math/calc"
)

// evalFunc evaluates one column at a redshift.
type evalFunc func(
	c *cosmo.Cosmology, z float64, opts []calc.QuadOption,
) (float64, error)

// Column is a quantity which can be evaluated at a redshift.
type Column struct {
	Name, Units, Doc string
	eval             evalFunc
}

// Eval evaluates the column at redshift z.
func (col Column) Eval(
	c *cosmo.Cosmology, z float64, opts ...calc.QuadOption,
) (float64, error) {
	return col.eval(c, z, opts)
}

// UsesIntegral returns true if evaluating the column integrates over cosmic
// time.
func (col Column) UsesIntegral() bool {
	return col.Name == "age" || col.Name == "lookback"
}

func density(comp cosmo.Component) evalFunc {
	return func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return c.Density(comp, z)
	}
}

func abundance(comp cosmo.Component) evalFunc {
	return func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return c.Omega(comp, z)
	}
}

// Columns lists every column, in their default order.
var Columns = []Column{
	{"z", "", "redshift", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		if _, err := cosmo.RedshiftToScaleFactor(z); err != nil {
			return math.NaN(), err
		}
		return z, nil
	}},
	{"a", "", "scale factor", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return cosmo.RedshiftToScaleFactor(z)
	}},
	{"H", "km/s/Mpc", "Hubble rate", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return c.HubbleRate(z)
	}},
	{"E", "", "H(z) / H0", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return c.HubbleEvolution(z)
	}},
	{"T", "K", "CMB temperature", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		t, err := c.TemperatureCMB(z)
		return float64(t), err
	}},
	{"rho_crit", "kg/m^3", "critical density", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		return c.CriticalDensity(z)
	}},
	{"rho_r", "kg/m^3", "radiation density", density(cosmo.Radiation)},
	{"rho_gamma", "kg/m^3", "photon density", density(cosmo.Photons)},
	{"rho_nu", "kg/m^3", "neutrino density", density(cosmo.Neutrinos)},
	{"rho_m", "kg/m^3", "matter density", density(cosmo.Matter)},
	{"rho_cdm", "kg/m^3", "cold dark matter density", density(cosmo.CDM)},
	{"rho_b", "kg/m^3", "baryon density", density(cosmo.Baryons)},
	{"rho_de", "kg/m^3", "dark energy density", density(cosmo.DarkEnergy)},
	{"Omega_r", "", "radiation abundance", abundance(cosmo.Radiation)},
	{"Omega_gamma", "", "photon abundance", abundance(cosmo.Photons)},
	{"Omega_nu", "", "neutrino abundance", abundance(cosmo.Neutrinos)},
	{"Omega_m", "", "matter abundance", abundance(cosmo.Matter)},
	{"Omega_cdm", "", "cold dark matter abundance", abundance(cosmo.CDM)},
	{"Omega_b", "", "baryon abundance", abundance(cosmo.Baryons)},
	{"Omega_de", "", "dark energy abundance", abundance(cosmo.DarkEnergy)},
	{"age", "Gyr", "time since the Big Bang", func(c *cosmo.Cosmology, z float64, opts []calc.QuadOption) (float64, error) {
		t, err := c.Age(z, opts...)
		return float64(t / cosmo.Gyr), err
	}},
	{"lookback", "Gyr", "time until today", func(c *cosmo.Cosmology, z float64, opts []calc.QuadOption) (float64, error) {
		t, err := c.LookbackTime(z, opts...)
		return float64(t / cosmo.Gyr), err
	}},
	{"dtdz", "Gyr", "derivative of cosmic time with respect to redshift", func(c *cosmo.Cosmology, z float64, _ []calc.QuadOption) (float64, error) {
		e, err := c.HubbleEvolution(z)
		if err != nil {
			return math.NaN(), err
		}
		return -float64(c.HubbleTime()/cosmo.Gyr) / ((1 + z) * e), nil
	}},
}

// DefaultColumns are the columns printed when none are requested.
var DefaultColumns = []string{"z", "H", "Omega_m", "Omega_de", "age"}

// ColumnNames returns the names of every column.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i := range Columns {
		names[i] = Columns[i].Name
	}
	return names
}

// ParseColumns looks up columns by name. Unknown names are an error which
// lists the valid ones.
func ParseColumns(names []string) ([]Column, error) {
	if len(names) == 0 {
		names = DefaultColumns
	}

	cols := make([]Column, len(names))
NameLoop:
	for i, name := range names {
		for j := range Columns {
			if Columns[j].Name == name {
				cols[i] = Columns[j]
				continue NameLoop
			}
		}
		return nil, fmt.Errorf("I don't recognize the column '%s'. Valid "+
			"columns are: %s", name, strings.Join(ColumnNames(), " "))
	}
	return cols, nil
}

// EvalRows evaluates cols at every redshift in zs and returns one row per
// redshift. Rows are evaluated concurrently; the first error cancels the
// rest.
func EvalRows(
	ctx context.Context, c *cosmo.Cosmology, zs []float64, cols []Column,
	opts []calc.QuadOption,
) ([][]float64, error) {
	rows := make([][]float64, len(zs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range zs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := evalRow(c, zs[i], cols, opts)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func evalRow(
	c *cosmo.Cosmology, z float64, cols []Column, opts []calc.QuadOption,
) ([]float64, error) {
	row := make([]float64, len(cols))
	for j := range cols {
		x, err := cols[j].eval(c, z, opts)
		if err != nil {
			return nil, fmt.Errorf("%s at z = %g: %w", cols[j].Name, z, err)
		}
		row[j] = x
	}
	return row, nil
}
