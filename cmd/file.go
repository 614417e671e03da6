package cmd

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig holds the variables found in a config file. Variables which
// the file doesn't mention are nil.
type FileConfig struct {
	Version     *string  `toml:"version"`
	H100        *float64 `toml:"h100"`
	OmegaCDM    *float64 `toml:"omega_cdm"`
	OmegaBaryon *float64 `toml:"omega_baryon"`
	TCMB        *float64 `toml:"tcmb"`
	NEff        *float64 `toml:"neff"`
	RTol        *float64 `toml:"rtol"`
	ATol        *float64 `toml:"atol"`
	MaxEvals    *int64   `toml:"max_evals"`
	LogMode     *string  `toml:"log_mode"`
}

// ReadTOMLConfig reads and parses a TOML config file. Unknown keys are an
// error, like unknown variables in "[cosmology]" files.
func ReadTOMLConfig(fname string) (FileConfig, error) {
	var fc FileConfig
	f, err := os.Open(fname)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fc, fmt.Errorf("config file %s: %w", fname, err)
	}
	return fc, nil
}

// ApplyFileConfig applies the variables set in a config file, skipping
// those whose flags were set explicitly.
func ApplyFileConfig(cfg *GlobalConfig, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("", fc.Version, &cfg.Version)
	s.setFloat("h100", fc.H100, &cfg.H100)
	s.setFloat("omega-cdm", fc.OmegaCDM, &cfg.OmegaCDM)
	s.setFloat("omega-baryon", fc.OmegaBaryon, &cfg.OmegaBaryon)
	s.setFloat("tcmb", fc.TCMB, &cfg.TCMB)
	s.setFloat("neff", fc.NEff, &cfg.NEff)
	s.setFloat("rtol", fc.RTol, &cfg.RTol)
	s.setFloat("atol", fc.ATol, &cfg.ATol)
	s.setInt("max-evals", fc.MaxEvals, &cfg.MaxEvals)
	s.setString("log-mode", fc.LogMode, &cfg.LogMode)
}

// configSetter applies configuration values while respecting flag
// precedence. It only applies values whose flags haven't been set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag string, value *string, dst *string) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setInt(flag string, value *int64, dst *int64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
