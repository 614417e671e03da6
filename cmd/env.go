package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the FLRW_* environment variables. Unset variables are nil.
type EnvConfig struct {
	ConfigFile  *string  `env:"FLRW_CONFIG"`
	H100        *float64 `env:"FLRW_H100"`
	OmegaCDM    *float64 `env:"FLRW_OMEGA_CDM"`
	OmegaBaryon *float64 `env:"FLRW_OMEGA_BARYON"`
	TCMB        *float64 `env:"FLRW_TCMB"`
	NEff        *float64 `env:"FLRW_NEFF"`
	LogMode     *string  `env:"FLRW_LOG_MODE"`
}

// LoadEnvConfig loads configuration from environment variables.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return ec, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies environment variables. They override the config
// file but not explicitly set flags.
func ApplyEnvConfig(cfg *GlobalConfig, ec EnvConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setFloat("h100", ec.H100, &cfg.H100)
	s.setFloat("omega-cdm", ec.OmegaCDM, &cfg.OmegaCDM)
	s.setFloat("omega-baryon", ec.OmegaBaryon, &cfg.OmegaBaryon)
	s.setFloat("tcmb", ec.TCMB, &cfg.TCMB)
	s.setFloat("neff", ec.NEff, &cfg.NEff)
	s.setString("log-mode", ec.LogMode, &cfg.LogMode)
}
