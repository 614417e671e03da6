package cosmo

import (
	"gonum.org/v1/gonum/unit"
	"gonum.org/v1/gonum/unit/constant"
)

const (
	// KmMks is a kilometer in meters.
	KmMks = unit.Kilo
	// ParsecMks is a parsec in meters.
	ParsecMks = 3.0856775814913673e16
	// MpcMks is a megaparsec in meters.
	MpcMks = unit.Mega * ParsecMks
	// MSunMks is the nominal solar mass in kilograms.
	MSunMks = 1.98847e30

	// Gyr is a billion Julian years.
	Gyr = unit.Giga * 365.25 * 86400 * unit.Second

	// photonDensityCoeff converts T_CMB**4 / h**2 (in K**4) into the photon
	// density parameter.
	photonDensityCoeff = 4.48131e-7
)

// GMks is Newton's constant in m^3 kg^-1 s^-2.
var GMks = float64(constant.Gravitational)
