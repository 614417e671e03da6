package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/phil-mansfield/flrw/cosmo"
	"github.com/phil-mansfield/flrw/logging"
	"github.com/phil-mansfield/flrw/math/calc"
)

// ParamsConfig is the mode which prints the parameters of the cosmology.
type ParamsConfig struct{}

var _ Mode = &ParamsConfig{}

// Params holds the primary and derived parameters of a cosmology.
type Params struct {
	H100             float64  `json:"h100" yaml:"h100"`
	H0               float64  `json:"H0" yaml:"H0"`
	OmegaCDM0        float64  `json:"Omega_cdm0" yaml:"Omega_cdm0"`
	OmegaBaryon0     float64  `json:"Omega_b0" yaml:"Omega_b0"`
	OmegaMatter0     float64  `json:"Omega_m0" yaml:"Omega_m0"`
	OmegaPhoton0     float64  `json:"Omega_gamma0" yaml:"Omega_gamma0"`
	OmegaNeutrino0   float64  `json:"Omega_nu0" yaml:"Omega_nu0"`
	OmegaRadiation0  float64  `json:"Omega_r0" yaml:"Omega_r0"`
	OmegaDarkEnergy0 float64  `json:"Omega_de0" yaml:"Omega_de0"`
	TCMB0            float64  `json:"T_cmb0" yaml:"T_cmb0"`
	NEff             float64  `json:"N_eff" yaml:"N_eff"`
	RhoCritical0     float64  `json:"rho_crit0" yaml:"rho_crit0"`
	ZEqMR            float64  `json:"z_eq_matter_radiation" yaml:"z_eq_matter_radiation"`
	AEqMR            float64  `json:"a_eq_matter_radiation" yaml:"a_eq_matter_radiation"`
	ZEqMDE           float64  `json:"z_eq_matter_dark_energy" yaml:"z_eq_matter_dark_energy"`
	AEqMDE           float64  `json:"a_eq_matter_dark_energy" yaml:"a_eq_matter_dark_energy"`
	HubbleTime       float64  `json:"hubble_time_gyr" yaml:"hubble_time_gyr"`
	Age0             *float64 `json:"age0_gyr" yaml:"age0_gyr"`
	Diagnostics      []string `json:"diagnostics" yaml:"diagnostics"`
}

var _ Output = &Params{}

// NewParams collects the parameters of c. The present age is computed with
// opts and left nil if the integral fails; the failure is recorded in
// Diagnostics.
func NewParams(c *cosmo.Cosmology, opts ...calc.QuadOption) *Params {
	p := &Params{
		H100:             c.H100(),
		H0:               c.HubbleConstant(),
		OmegaCDM0:        c.OmegaCDM0(),
		OmegaBaryon0:     c.OmegaBaryon0(),
		OmegaMatter0:     c.OmegaMatter0(),
		OmegaPhoton0:     c.OmegaPhoton0(),
		OmegaNeutrino0:   c.OmegaNeutrino0(),
		OmegaRadiation0:  c.OmegaRadiation0(),
		OmegaDarkEnergy0: c.OmegaDarkEnergy0(),
		TCMB0:            c.TCMB0(),
		NEff:             c.NEff(),
		RhoCritical0:     c.RhoCritical0(),
		ZEqMR:            c.ZEqMatterRadiation(),
		AEqMR:            c.AEqMatterRadiation(),
		ZEqMDE:           c.ZEqMatterDarkEnergy(),
		AEqMDE:           c.AEqMatterDarkEnergy(),
		HubbleTime:       float64(c.HubbleTime() / cosmo.Gyr),
		Diagnostics:      []string{},
	}
	for _, d := range c.Diagnostics() {
		p.Diagnostics = append(p.Diagnostics, d.String())
	}

	if age, err := c.Age(0, opts...); err != nil {
		p.Diagnostics = append(p.Diagnostics,
			fmt.Sprintf("could not compute the present age: %v", err))
	} else {
		gyr := float64(age / cosmo.Gyr)
		p.Age0 = &gyr
	}

	return p
}

// Lines returns one "name = value" line per parameter.
func (p *Params) Lines() []string {
	lines := []string{
		fmt.Sprintf("h100         = %.8g", p.H100),
		fmt.Sprintf("H0           = %.8g km/s/Mpc", p.H0),
		fmt.Sprintf("Omega_cdm0   = %.8g", p.OmegaCDM0),
		fmt.Sprintf("Omega_b0     = %.8g", p.OmegaBaryon0),
		fmt.Sprintf("Omega_m0     = %.8g", p.OmegaMatter0),
		fmt.Sprintf("Omega_gamma0 = %.8g", p.OmegaPhoton0),
		fmt.Sprintf("Omega_nu0    = %.8g", p.OmegaNeutrino0),
		fmt.Sprintf("Omega_r0     = %.8g", p.OmegaRadiation0),
		fmt.Sprintf("Omega_de0    = %.8g", p.OmegaDarkEnergy0),
		fmt.Sprintf("T_cmb0       = %.8g K", p.TCMB0),
		fmt.Sprintf("N_eff        = %.8g", p.NEff),
		fmt.Sprintf("rho_crit0    = %.8g kg/m^3", p.RhoCritical0),
		fmt.Sprintf("z_eq(m, r)   = %.8g", p.ZEqMR),
		fmt.Sprintf("a_eq(m, r)   = %.8g", p.AEqMR),
		fmt.Sprintf("z_eq(m, de)  = %.8g", p.ZEqMDE),
		fmt.Sprintf("a_eq(m, de)  = %.8g", p.AEqMDE),
		fmt.Sprintf("1 / H0       = %.8g Gyr", p.HubbleTime),
	}
	if p.Age0 != nil {
		lines = append(lines, fmt.Sprintf("age0         = %.8g Gyr", *p.Age0))
	}
	for _, d := range p.Diagnostics {
		lines = append(lines, "# "+d)
	}
	return lines
}

func (config *ParamsConfig) AddFlags(fs *pflag.FlagSet) {}

func (config *ParamsConfig) ReadConfig(
	fname string, changed map[string]bool,
) error {
	if fname != "" {
		return fmt.Errorf("the params mode does not have a mode config file")
	}
	return nil
}

func (config *ParamsConfig) ExampleConfig() string {
	return "# The params mode does not have a mode config file."
}

func (config *ParamsConfig) Run(
	ctx context.Context, args []string, gConfig *GlobalConfig, stdin io.Reader,
) (Output, error) {
	log := gConfig.Logger()
	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}

	c, err := gConfig.Cosmology(log)
	if err != nil {
		return nil, err
	}
	p := NewParams(c, gConfig.QuadOptions()...)

	if logging.Mode == logging.Performance {
		log.Info("params finished",
			logging.Any("time", time.Since(t)),
			logging.String("memory", logging.MemString()))
	}
	return p, nil
}
