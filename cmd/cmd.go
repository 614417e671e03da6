/*package cmd contains code for running flrw in its various command line
modes, along with the global config shared by all of them.*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/calc"
	"github.com/phil-mansfield/flrw/parse"
	"github.com/phil-mansfield/flrw/version"
)

// ModeNames maps each analysis mode onto a constructor for it.
var ModeNames = map[string]func() Mode{
	"params": func() Mode { return &ParamsConfig{} },
	"eval":   func() Mode { return DefaultEvalConfig() },
	"table":  func() Mode { return DefaultTableConfig() },
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// AddFlags registers the mode's flags. Flags are bound directly to the
	// mode's fields.
	AddFlags(fs *pflag.FlagSet)
	// ReadConfig reads a mode-specific config file. Variables whose flags
	// appear in changed are left alone. An empty fname is not an error.
	ReadConfig(fname string, changed map[string]bool) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. args are the positional command line
	// arguments and stdin is only read by modes that take input.
	Run(
		ctx context.Context, args []string, gConfig *GlobalConfig,
		stdin io.Reader,
	) (Output, error)
}

// GlobalConfig is the config used by every mode: the cosmology and the
// integration settings.
type GlobalConfig struct {
	Version     string
	H100        float64
	OmegaCDM    float64
	OmegaBaryon float64
	TCMB        float64
	NEff        float64
	RTol        float64
	ATol        float64
	MaxEvals    int64
	LogMode     string
	Format      string
}

// DefaultGlobalConfig returns the Planck 2018 cosmology with the default
// integration settings.
func DefaultGlobalConfig() *GlobalConfig {
	c := cosmo.Planck18
	return &GlobalConfig{
		Version:     version.SourceVersion,
		H100:        c.H100(),
		OmegaCDM:    c.OmegaCDM0(),
		OmegaBaryon: c.OmegaBaryon0(),
		TCMB:        c.TCMB0(),
		NEff:        c.NEff(),
		RTol:        1e-6,
		ATol:        0,
		MaxEvals:    100000,
		LogMode:     logging.Nil.String(),
		Format:      "text",
	}
}

// AddFlags registers the global flags, bound to config's fields.
func (config *GlobalConfig) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&config.H100, "h100", config.H100,
		"dimensionless Hubble constant, H0 / (100 km/s/Mpc)")
	fs.Float64Var(&config.OmegaCDM, "omega-cdm", config.OmegaCDM,
		"cold dark matter density parameter today")
	fs.Float64Var(&config.OmegaBaryon, "omega-baryon", config.OmegaBaryon,
		"baryon density parameter today")
	fs.Float64Var(&config.TCMB, "tcmb", config.TCMB,
		"CMB temperature today [K]")
	fs.Float64Var(&config.NEff, "neff", config.NEff,
		"effective number of neutrino species")
	fs.Float64Var(&config.RTol, "rtol", config.RTol,
		"relative tolerance of age integrals")
	fs.Float64Var(&config.ATol, "atol", config.ATol,
		"absolute tolerance of age integrals")
	fs.Int64Var(&config.MaxEvals, "max-evals", config.MaxEvals,
		"integrand evaluation budget of age integrals")
	fs.StringVar(&config.LogMode, "log-mode", config.LogMode,
		"logging mode: nil, performance, or debug")
	fs.StringVar(&config.Format, "format", config.Format,
		"output format: text, json, or yaml")
}

// Load layers config: the config file fname (or $FLRW_CONFIG if fname is
// empty), then the FLRW_* environment variables, then any flags in changed.
// Flags are already bound, so file and env values are only applied to
// unchanged flags.
func (config *GlobalConfig) Load(fname string, changed map[string]bool) error {
	ec, err := LoadEnvConfig()
	if err != nil {
		return err
	}
	if fname == "" && ec.ConfigFile != nil {
		fname = *ec.ConfigFile
	}

	if fname != "" {
		fc, err := LoadFileConfig(fname)
		if err != nil {
			return err
		}
		ApplyFileConfig(config, fc, changed)
	}
	ApplyEnvConfig(config, ec, changed)

	return config.validate()
}

// ChangedFlags returns the set of flags which were set on the command line.
func ChangedFlags(fs *pflag.FlagSet) map[string]bool {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set. The cosmological parameters themselves are checked by
// cosmo.New.
func (config *GlobalConfig) validate() error {
	if err := version.Check(config.Version); err != nil {
		return err
	}

	if _, err := logging.ParseFlag(config.LogMode); err != nil {
		return fmt.Errorf("the 'LogMode' variable is invalid: %w", err)
	}

	switch config.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("the 'Format' variable is set to '%s', which I "+
			"don't recognize (expected text, json, or yaml)", config.Format)
	}

	if !(config.RTol >= 0) || math.IsInf(config.RTol, 0) {
		return fmt.Errorf("the 'RTol' variable is set to %g, but it must "+
			"be non-negative and finite", config.RTol)
	} else if !(config.ATol >= 0) || math.IsInf(config.ATol, 0) {
		return fmt.Errorf("the 'ATol' variable is set to %g, but it must "+
			"be non-negative and finite", config.ATol)
	} else if config.RTol == 0 && config.ATol == 0 {
		return fmt.Errorf("at least one of 'RTol' and 'ATol' must be " +
			"positive")
	}

	if config.MaxEvals < 22 {
		return fmt.Errorf("the 'MaxEvals' variable is set to %d, but a "+
			"single integration panel takes 22 evaluations", config.MaxEvals)
	}

	return nil
}

// Cosmology constructs the configured cosmology.
func (config *GlobalConfig) Cosmology(log logging.Logger) (*cosmo.Cosmology, error) {
	return cosmo.New(
		config.H100, config.OmegaCDM, config.OmegaBaryon,
		cosmo.TCMB(config.TCMB), cosmo.NEff(config.NEff), cosmo.Logger(log),
	)
}

// QuadOptions returns the integration settings as calc options.
func (config *GlobalConfig) QuadOptions() []calc.QuadOption {
	return []calc.QuadOption{
		calc.RTol(config.RTol),
		calc.ATol(config.ATol),
		calc.MaxEvals(int(config.MaxEvals)),
	}
}

// Logger returns a logger for the configured log mode.
func (config *GlobalConfig) Logger() logging.Logger {
	mode, err := logging.ParseFlag(config.LogMode)
	if err != nil || mode == logging.Nil {
		return logging.Nop{}
	}
	return logging.New(mode)
}

// ReadParseConfig reads a config file in the "[cosmology]" format.
func ReadParseConfig(fname string) (FileConfig, error) {
	fc := FileConfig{}
	tmp := &GlobalConfig{}

	vars := parse.NewConfigVars("cosmology")
	vars.String(&tmp.Version, "Version", version.SourceVersion)
	vars.Float(&tmp.H100, "H100", 0)
	vars.Float(&tmp.OmegaCDM, "OmegaCDM", 0)
	vars.Float(&tmp.OmegaBaryon, "OmegaBaryon", 0)
	vars.Float(&tmp.TCMB, "TCMB", 0)
	vars.Float(&tmp.NEff, "NEff", 0)
	vars.Float(&tmp.RTol, "RTol", 0)
	vars.Float(&tmp.ATol, "ATol", 0)
	vars.Int(&tmp.MaxEvals, "MaxEvals", 0)
	vars.String(&tmp.LogMode, "LogMode", "")

	if err := parse.ReadConfig(fname, vars); err != nil {
		return fc, err
	}

	if vars.IsSet("Version") {
		fc.Version = &tmp.Version
	}
	floats := []struct {
		name string
		src  *float64
		dst  **float64
	}{
		{"H100", &tmp.H100, &fc.H100},
		{"OmegaCDM", &tmp.OmegaCDM, &fc.OmegaCDM},
		{"OmegaBaryon", &tmp.OmegaBaryon, &fc.OmegaBaryon},
		{"TCMB", &tmp.TCMB, &fc.TCMB},
		{"NEff", &tmp.NEff, &fc.NEff},
		{"RTol", &tmp.RTol, &fc.RTol},
		{"ATol", &tmp.ATol, &fc.ATol},
	}
	for _, f := range floats {
		if vars.IsSet(f.name) {
			*f.dst = f.src
		}
	}
	if vars.IsSet("MaxEvals") {
		fc.MaxEvals = &tmp.MaxEvals
	}
	if vars.IsSet("LogMode") {
		fc.LogMode = &tmp.LogMode
	}

	return fc, nil
}

// LoadFileConfig reads a config file, choosing the format from its
// extension: ".toml" files are TOML, anything else uses the "[cosmology]"
// format.
func LoadFileConfig(fname string) (FileConfig, error) {
	if strings.ToLower(filepath.Ext(fname)) == ".toml" {
		return ReadTOMLConfig(fname)
	}
	return ReadParseConfig(fname)
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	c := DefaultGlobalConfig()
	return fmt.Sprintf(`[cosmology]
# Target version of flrw. This option merely allows flrw to notice when its
# source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# The cosmological parameters. Dark energy is whatever is needed to make the
# universe flat. The values below are the Planck 2018 best fit, which is also
# what you get if a variable is left out.
H100 = %g
OmegaCDM = %g
OmegaBaryon = %g
TCMB = %g
NEff = %g

# Accuracy settings for the age integrals. Integration stops when the error
# estimate is below max(ATol, RTol * |age|), and fails if that takes more
# than MaxEvals evaluations of the integrand.
RTol = %g
ATol = %g
MaxEvals = %d

# How much flrw writes to stderr: nil, performance, or debug.
LogMode = %s

# Any of these variables can be overridden with FLRW_* environment variables
# (e.g. FLRW_H100) or with command line flags (e.g. --h100).`,
		version.SourceVersion, c.H100, c.OmegaCDM, c.OmegaBaryon, c.TCMB,
		c.NEff, c.RTol, c.ATol, c.MaxEvals, c.LogMode)
}
