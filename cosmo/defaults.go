package cosmo

import (
	"gonum.org/v1/gonum/unit"

	"github.com/phil-mansfield/flrw/math/calc"
)

// The functions below evaluate Planck18.

func TemperatureCMB(z float64) (unit.Temperature, error) {
	return Planck18.TemperatureCMB(z)
}

func HubbleConstant() float64 { return Planck18.HubbleConstant() }

func HubbleEvolution(z float64) (float64, error) {
	return Planck18.HubbleEvolution(z)
}

func HubbleRate(z float64) (float64, error) { return Planck18.HubbleRate(z) }

func HubbleTime() unit.Time { return Planck18.HubbleTime() }

func CriticalDensity(z float64) (float64, error) {
	return Planck18.CriticalDensity(z)
}

func RadiationDensity(z float64) (float64, error) {
	return Planck18.RadiationDensity(z)
}

func PhotonDensity(z float64) (float64, error) {
	return Planck18.PhotonDensity(z)
}

func NeutrinoDensity(z float64) (float64, error) {
	return Planck18.NeutrinoDensity(z)
}

func MatterDensity(z float64) (float64, error) {
	return Planck18.MatterDensity(z)
}

func CDMDensity(z float64) (float64, error) { return Planck18.CDMDensity(z) }

func BaryonDensity(z float64) (float64, error) {
	return Planck18.BaryonDensity(z)
}

func DarkEnergyDensity(z float64) (float64, error) {
	return Planck18.DarkEnergyDensity(z)
}

func OmegaRadiation(z float64) (float64, error) {
	return Planck18.OmegaRadiation(z)
}

func OmegaPhoton(z float64) (float64, error) { return Planck18.OmegaPhoton(z) }

func OmegaNeutrino(z float64) (float64, error) {
	return Planck18.OmegaNeutrino(z)
}

func OmegaMatter(z float64) (float64, error) { return Planck18.OmegaMatter(z) }

func OmegaCDM(z float64) (float64, error) { return Planck18.OmegaCDM(z) }

func OmegaBaryon(z float64) (float64, error) { return Planck18.OmegaBaryon(z) }

func OmegaDarkEnergy(z float64) (float64, error) {
	return Planck18.OmegaDarkEnergy(z)
}

func ZEqMatterRadiation() float64 { return Planck18.ZEqMatterRadiation() }

func ZEqMatterDarkEnergy() float64 { return Planck18.ZEqMatterDarkEnergy() }

func AEqMatterRadiation() float64 { return Planck18.AEqMatterRadiation() }

func AEqMatterDarkEnergy() float64 { return Planck18.AEqMatterDarkEnergy() }

func Age(z float64, opts ...calc.QuadOption) (unit.Time, error) {
	return Planck18.Age(z, opts...)
}

func LookbackTime(z float64, opts ...calc.QuadOption) (unit.Time, error) {
	return Planck18.LookbackTime(z, opts...)
}
