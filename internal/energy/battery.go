package energy

import "fmt"

// Battery is a first-order electrical storage model. Charging draws more from
// the grid than is stored and discharging delivers less than is drawn from the
// cells, both governed by the round-trip efficiency. A standing loss is
// applied once per time step before the charge command.
type Battery struct {
	capacity        float64
	nominalPower    float64
	efficiency      float64
	lossCoefficient float64

	soc                    float64
	socHistory             []float64
	electricityConsumption []float64
}

func NewBattery(capacity, nominalPower, efficiency, lossCoefficient float64) (*Battery, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("battery capacity must be >= 0, got %v", capacity)
	}
	if nominalPower < 0 {
		return nil, fmt.Errorf("battery nominal power must be >= 0, got %v", nominalPower)
	}
	if capacity > 0 && (efficiency <= 0 || efficiency > 1) {
		return nil, fmt.Errorf("battery efficiency must be in (0, 1], got %v", efficiency)
	}
	if lossCoefficient < 0 || lossCoefficient >= 1 {
		return nil, fmt.Errorf("battery loss coefficient must be in [0, 1), got %v", lossCoefficient)
	}
	b := &Battery{
		capacity:        capacity,
		nominalPower:    nominalPower,
		efficiency:      efficiency,
		lossCoefficient: lossCoefficient,
	}
	b.Reset()
	return b, nil
}

func (b *Battery) Capacity() float64 { return b.capacity }

// SOC returns the current state of charge in kWh.
func (b *Battery) SOC() float64 { return b.soc }

// NormalizedSOC returns the state of charge as a fraction of capacity.
func (b *Battery) NormalizedSOC() float64 {
	if b.capacity == 0 {
		return 0
	}
	return b.soc / b.capacity
}

// ElectricityConsumption returns the per-step grid draw history in kWh.
// Positive entries are charging draw, negative entries are discharge supply.
func (b *Battery) ElectricityConsumption() []float64 {
	return append([]float64(nil), b.electricityConsumption...)
}

// SOCHistory returns the per-step state of charge history in kWh.
func (b *Battery) SOCHistory() []float64 {
	return append([]float64(nil), b.socHistory...)
}

// Charge applies the step's standing loss and then charges (energy > 0) or
// discharges (energy < 0) by up to |energy| kWh, clamped to nominal power and
// state-of-charge bounds. It records one history entry per call.
func (b *Battery) Charge(energy float64) {
	b.soc *= 1 - b.lossCoefficient

	if b.capacity == 0 || b.nominalPower == 0 {
		b.record(0)
		return
	}
	if energy > b.nominalPower {
		energy = b.nominalPower
	}
	if energy < -b.nominalPower {
		energy = -b.nominalPower
	}

	var consumption float64
	if energy >= 0 {
		stored := energy * b.efficiency
		if room := b.capacity - b.soc; stored > room {
			stored = room
		}
		b.soc += stored
		consumption = stored / b.efficiency
	} else {
		delivered := -energy * b.efficiency
		if available := b.soc * b.efficiency; delivered > available {
			delivered = available
		}
		b.soc -= delivered / b.efficiency
		consumption = -delivered
	}
	b.record(consumption)
}

func (b *Battery) record(consumption float64) {
	b.socHistory = append(b.socHistory, b.soc)
	b.electricityConsumption = append(b.electricityConsumption, consumption)
}

// Reset restores the initial state and seeds histories with the idle step 0.
func (b *Battery) Reset() {
	b.soc = 0
	b.socHistory = []float64{0}
	b.electricityConsumption = []float64{0}
}
