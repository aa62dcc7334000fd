package energy

import "fmt"

const (
	minCOP = 1.0
	maxCOP = 20.0
)

// HeatPump serves a cooling demand with a Carnot-derived coefficient of
// performance scaled by the unit's technical efficiency.
type HeatPump struct {
	nominalPower      float64
	efficiency        float64
	targetTemperature float64
}

func NewHeatPump(nominalPower, efficiency, targetTemperature float64) (*HeatPump, error) {
	if nominalPower < 0 {
		return nil, fmt.Errorf("heat pump nominal power must be >= 0, got %v", nominalPower)
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, fmt.Errorf("heat pump efficiency must be in (0, 1], got %v", efficiency)
	}
	return &HeatPump{
		nominalPower:      nominalPower,
		efficiency:        efficiency,
		targetTemperature: targetTemperature,
	}, nil
}

// COP returns the cooling coefficient of performance at the given outdoor
// dry-bulb temperature in C, clamped to [1, 20].
func (h *HeatPump) COP(outdoorTemperature float64) float64 {
	targetK := h.targetTemperature + 273.15
	lift := outdoorTemperature - h.targetTemperature
	if lift <= 0 {
		return maxCOP
	}
	cop := h.efficiency * targetK / lift
	if cop > maxCOP {
		return maxCOP
	}
	if cop < minCOP {
		return minCOP
	}
	return cop
}

// InputPower returns the electric energy in kWh needed to deliver the given
// thermal demand in kWh at the given outdoor temperature.
func (h *HeatPump) InputPower(demand, outdoorTemperature float64) float64 {
	if demand <= 0 {
		return 0
	}
	return demand / h.COP(outdoorTemperature)
}

// MaxOutput returns the maximum thermal energy the unit can deliver in one
// hour at the given outdoor temperature.
func (h *HeatPump) MaxOutput(outdoorTemperature float64) float64 {
	return h.nominalPower * h.COP(outdoorTemperature)
}
