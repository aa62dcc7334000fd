package energy

import "fmt"

// PV converts the dataset's per-kW inverter output series into building
// generation.
type PV struct {
	nominalPower float64
}

func NewPV(nominalPower float64) (*PV, error) {
	if nominalPower < 0 {
		return nil, fmt.Errorf("pv nominal power must be >= 0, got %v", nominalPower)
	}
	return &PV{nominalPower: nominalPower}, nil
}

func (p *PV) NominalPower() float64 { return p.nominalPower }

// Generation returns the energy produced over one hour in kWh given the
// inverter output per installed kW, in W/kW.
func (p *PV) Generation(outputPerKW float64) float64 {
	if outputPerKW < 0 {
		return 0
	}
	return p.nominalPower * outputPerKW / 1000
}
