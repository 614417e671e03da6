package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/parse"
)

// TableConfig is the mode which evaluates columns on a grid of redshifts
// uniformly spaced in ln(1 + z).
type TableConfig struct {
	zMin, zMax  float64
	steps       int64
	columns     []string
	interpolate bool
}

var _ Mode = &TableConfig{}

func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		zMin: 0, zMax: 10, steps: 50,
		columns: DefaultColumns,
	}
}

func (config *TableConfig) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&config.zMin, "z-min", config.zMin, "smallest redshift")
	fs.Float64Var(&config.zMax, "z-max", config.zMax, "largest redshift")
	fs.Int64Var(&config.steps, "steps", config.steps, "number of redshifts")
	fs.BoolVar(&config.interpolate, "interpolate", config.interpolate,
		"take ages from an interpolated age table")
}

func (config *TableConfig) ExampleConfig() string {
	return `[table]

#####################
## Optional Fields ##
#####################

# The table covers ZMin <= z <= ZMax with Steps redshifts spaced uniformly in
# ln(1 + z). The dtdz column needs at least 5 steps.
# ZMin = 0
# ZMax = 10
# Steps = 50

# Columns lists the quantities to evaluate. Columns given on the command line
# take precedence.
# Columns = z, H, Omega_m, Omega_de, age

# If Interpolate is true, the age and lookback columns are read off a cubic
# spline through the ages at each step instead of being integrated one by
# one. This needs ZMin >= 0.
# Interpolate = false`
}

func (config *TableConfig) ReadConfig(
	fname string, changed map[string]bool,
) error {
	if fname == "" {
		return config.validate()
	}

	tmp := &TableConfig{}
	vars := parse.NewConfigVars("table")
	vars.Float(&tmp.zMin, "ZMin", 0)
	vars.Float(&tmp.zMax, "ZMax", 0)
	vars.Int(&tmp.steps, "Steps", 0)
	vars.Strings(&tmp.columns, "Columns", nil)
	vars.Bool(&tmp.interpolate, "Interpolate", false)

	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}

	if vars.IsSet("ZMin") && !changed["z-min"] {
		config.zMin = tmp.zMin
	}
	if vars.IsSet("ZMax") && !changed["z-max"] {
		config.zMax = tmp.zMax
	}
	if vars.IsSet("Steps") && !changed["steps"] {
		config.steps = tmp.steps
	}
	if vars.IsSet("Columns") {
		config.columns = tmp.columns
	}
	if vars.IsSet("Interpolate") && !changed["interpolate"] {
		config.interpolate = tmp.interpolate
	}

	return config.validate()
}

func (config *TableConfig) validate() error {
	cols, err := ParseColumns(config.columns)
	if err != nil {
		return err
	}

	switch {
	case math.IsNaN(config.zMin) || config.zMin <= -1:
		return fmt.Errorf("'ZMin' is set to %g, but it must be > -1",
			config.zMin)
	case !(config.zMax > config.zMin) || math.IsInf(config.zMax, 0):
		return fmt.Errorf("'ZMax' is set to %g, but it must be finite and "+
			"larger than 'ZMin' = %g", config.zMax, config.zMin)
	case config.steps < 2:
		return fmt.Errorf("'Steps' is set to %d, but it must be at least 2",
			config.steps)
	case config.interpolate && config.zMin < 0:
		return fmt.Errorf("'Interpolate' needs 'ZMin' >= 0, but it is %g",
			config.zMin)
	case config.interpolate && config.steps < 3:
		return fmt.Errorf("'Interpolate' needs at least 3 'Steps'")
	}

	for i := range cols {
		if cols[i].Name == "dtdz" && config.steps < 5 {
			return fmt.Errorf("the dtdz column needs at least 5 'Steps', "+
				"but 'Steps' is %d", config.steps)
		}
	}
	return nil
}

// Grid returns the table's redshifts and the corresponding ln(1 + z).
func (config *TableConfig) Grid() (zs, lnxs []float64) {
	lnxs = floats.Span(make([]float64, config.steps),
		math.Log1p(config.zMin), math.Log1p(config.zMax))
	zs = make([]float64, len(lnxs))
	for i := range lnxs {
		zs[i] = math.Expm1(lnxs[i])
	}
	zs[0], zs[len(zs)-1] = config.zMin, config.zMax
	return zs, lnxs
}

func (config *TableConfig) Run(
	ctx context.Context, args []string, gConfig *GlobalConfig, stdin io.Reader,
) (Output, error) {
	log := gConfig.Logger()
	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}

	if len(args) > 0 {
		config.columns = args
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	cols, _ := ParseColumns(config.columns)

	c, err := gConfig.Cosmology(log)
	if err != nil {
		return nil, err
	}
	opts := gConfig.QuadOptions()
	zs, lnxs := config.Grid()

	var tab *cosmo.AgeTable
	if config.interpolate {
		tab, err = cosmo.NewAgeTable(c, config.zMax, int(config.steps), opts...)
		if err != nil {
			return nil, err
		}
	}

	// Columns which aren't evaluated point by point are filled in below.
	direct, idx := []Column{}, make([]int, len(cols))
	for j := range cols {
		idx[j] = -1
		if cols[j].Name == "dtdz" || (tab != nil && cols[j].UsesIntegral()) {
			continue
		}
		idx[j] = len(direct)
		direct = append(direct, cols[j])
	}

	directRows, err := EvalRows(ctx, c, zs, direct, opts)
	if err != nil {
		return nil, err
	}

	var dtdz []float64
	for j := range cols {
		if cols[j].Name == "dtdz" {
			if dtdz, err = timeDerivative(ctx, c, tab, zs, lnxs, opts); err != nil {
				return nil, err
			}
		}
	}

	rows := make([][]float64, len(zs))
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j := range cols {
			switch {
			case idx[j] >= 0:
				rows[i][j] = directRows[i][idx[j]]
			case cols[j].Name == "dtdz":
				rows[i][j] = dtdz[i]
			case cols[j].Name == "age":
				age, err := tab.Age(zs[i])
				if err != nil {
					return nil, err
				}
				rows[i][j] = float64(age / cosmo.Gyr)
			case cols[j].Name == "lookback":
				lb, err := tab.LookbackTime(zs[i])
				if err != nil {
					return nil, err
				}
				rows[i][j] = float64(lb / cosmo.Gyr)
			}
		}
	}

	if logging.Mode == logging.Performance {
		log.Info("table finished",
			logging.Int("rows", len(rows)),
			logging.Any("time", time.Since(t)),
			logging.String("memory", logging.MemString()))
	}
	return NewTable(cols, rows), nil
}

// timeDerivative differentiates the age along the grid:
// dt/dz = (dt/dln(1 + z)) / (1 + z). With an AgeTable the age spline is
// differentiated instead.
func timeDerivative(
	ctx context.Context, c *cosmo.Cosmology, tab *cosmo.AgeTable,
	zs, lnxs []float64, opts []calc.QuadOption,
) ([]float64, error) {
	if tab != nil {
		dtdz := make([]float64, len(zs))
		for i := range zs {
			dt, err := tab.TimeDerivative(zs[i])
			if err != nil {
				return nil, err
			}
			dtdz[i] = float64(dt / cosmo.Gyr)
		}
		return dtdz, nil
	}

	age, err := ParseColumns([]string{"age"})
	if err != nil {
		return nil, err
	}
	rows, err := EvalRows(ctx, c, zs, age, opts)
	if err != nil {
		return nil, err
	}
	ages := make([]float64, len(zs))
	for i := range rows {
		ages[i] = rows[i][0]
	}

	dtdz := calc.Deriv(lnxs, ages, 4)
	for i := range dtdz {
		dtdz[i] /= 1 + zs[i]
	}
	return dtdz, nil
}
