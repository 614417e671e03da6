package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/phil-mansfield/flrw/cmd/catalog"
	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/parse"
)

// EvalConfig is the mode which evaluates columns at a list of redshifts.
type EvalConfig struct {
	columns     []string
	redshifts   []float64
	zColumn     int64
	skipInvalid bool
}

var _ Mode = &EvalConfig{}

func DefaultEvalConfig() *EvalConfig {
	return &EvalConfig{columns: DefaultColumns}
}

func (config *EvalConfig) AddFlags(fs *pflag.FlagSet) {
	fs.Int64Var(&config.zColumn, "z-column", config.zColumn,
		"index of the stdin column holding redshifts")
	fs.BoolVar(&config.skipInvalid, "skip-invalid", config.skipInvalid,
		"drop invalid redshifts instead of failing")
}

func (config *EvalConfig) ExampleConfig() string {
	return `[eval]

#####################
## Optional Fields ##
#####################

# Columns lists the quantities to evaluate. Columns given on the command line
# take precedence. Run 'flrw eval --help' for the full list.
# Columns = z, H, Omega_m, Omega_de, age

# Redshifts is the list of redshifts to evaluate at. If it isn't set, they
# are read from stdin instead, one row per line.
# Redshifts = 0, 0.5, 1, 2, 4

# ZColumn is the column of stdin which holds the redshifts. Defaults to 0.
# ZColumn = 0

# If SkipInvalid is true, redshifts <= -1 are dropped with a warning instead
# of stopping the run.
# SkipInvalid = false`
}

func (config *EvalConfig) ReadConfig(
	fname string, changed map[string]bool,
) error {
	if fname == "" {
		return nil
	}

	tmp := &EvalConfig{}
	vars := parse.NewConfigVars("eval")
	vars.Strings(&tmp.columns, "Columns", nil)
	vars.Floats(&tmp.redshifts, "Redshifts", nil)
	vars.Int(&tmp.zColumn, "ZColumn", 0)
	vars.Bool(&tmp.skipInvalid, "SkipInvalid", false)

	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}

	if vars.IsSet("Columns") {
		config.columns = tmp.columns
	}
	if vars.IsSet("Redshifts") {
		config.redshifts = tmp.redshifts
	}
	if vars.IsSet("ZColumn") && !changed["z-column"] {
		config.zColumn = tmp.zColumn
	}
	if vars.IsSet("SkipInvalid") && !changed["skip-invalid"] {
		config.skipInvalid = tmp.skipInvalid
	}

	return config.validate()
}

func (config *EvalConfig) validate() error {
	if config.zColumn < 0 {
		return fmt.Errorf("'ZColumn' set to the negative value %d",
			config.zColumn)
	}
	_, err := ParseColumns(config.columns)
	return err
}

func (config *EvalConfig) Run(
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

	zs := config.redshifts
	if len(zs) == 0 {
		data, err := catalog.Read(stdin, []int{int(config.zColumn)})
		if err != nil {
			return nil, fmt.Errorf("reading redshifts from stdin: %w", err)
		}
		zs = data[0]
	}
	if config.skipInvalid {
		zs = validRedshifts(zs, log)
	}

	c, err := gConfig.Cosmology(log)
	if err != nil {
		return nil, err
	}

	rows, err := EvalRows(ctx, c, zs, cols, gConfig.QuadOptions())
	if err != nil {
		return nil, err
	}

	if logging.Mode == logging.Performance {
		log.Info("eval finished",
			logging.Int("rows", len(rows)),
			logging.Any("time", time.Since(t)),
			logging.String("memory", logging.MemString()))
	}
	return NewTable(cols, rows), nil
}

func validRedshifts(zs []float64, log logging.Logger) []float64 {
	out := make([]float64, 0, len(zs))
	for i, z := range zs {
		if _, err := cosmo.RedshiftToScaleFactor(z); err != nil {
			log.Warn("skipping invalid redshift",
				logging.Int("row", i), logging.Err(err))
			continue
		}
		out = append(out, z)
	}
	return out
}
