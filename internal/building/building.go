package building

import (
	"fmt"
	"math"

	"gridlearn/internal/data"
	"gridlearn/internal/energy"
)

// DefaultObservations is the observation set buildings expose unless a schema
// narrows it.
var DefaultObservations = []string{
	"month",
	"hour",
	"day_type",
	"outdoor_dry_bulb_temperature",
	"direct_solar_irradiance",
	"non_shiftable_load",
	"cooling_demand",
	"solar_generation",
	"electrical_storage_soc",
	"net_electricity_consumption",
	"electricity_pricing",
	"carbon_intensity",
}

// Building binds one building's time series to its devices and tracks the
// derived electricity series as the simulation advances.
type Building struct {
	name          string
	data          data.BuildingData
	battery       *energy.Battery
	pv            *energy.PV
	coolingDevice *energy.HeatPump

	activeObservations []string
	timeStep           int

	solarGeneration []float64 // kWh per step, precomputed
	baselineNet     []float64 // net consumption with the battery held idle

	coolingConsumption     []float64
	netConsumption         []float64
	netConsumptionPrice    []float64
	netConsumptionEmission []float64
}

func New(buildingData data.BuildingData) (*Building, error) {
	if err := buildingData.Validate(); err != nil {
		return nil, err
	}
	battery, err := energy.NewBattery(
		buildingData.Battery.Capacity,
		buildingData.Battery.NominalPower,
		buildingData.Battery.Efficiency,
		buildingData.Battery.LossCoefficient,
	)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", buildingData.Name, err)
	}
	pv, err := energy.NewPV(buildingData.PV.NominalPower)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", buildingData.Name, err)
	}
	coolingDevice, err := energy.NewHeatPump(
		buildingData.CoolingDevice.NominalPower,
		buildingData.CoolingDevice.Efficiency,
		buildingData.CoolingDevice.TargetTemperature,
	)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", buildingData.Name, err)
	}

	b := &Building{
		name:               buildingData.Name,
		data:               buildingData,
		battery:            battery,
		pv:                 pv,
		coolingDevice:      coolingDevice,
		activeObservations: append([]string(nil), DefaultObservations...),
	}
	b.precompute()
	b.Reset()
	return b, nil
}

func (b *Building) precompute() {
	horizon := len(b.data.Energy.Hour)
	b.solarGeneration = make([]float64, horizon)
	b.baselineNet = make([]float64, horizon)
	for t := 0; t < horizon; t++ {
		b.solarGeneration[t] = b.pv.Generation(b.data.Energy.SolarGeneration[t])
		cooling := b.coolingDevice.InputPower(
			b.data.Energy.CoolingDemand[t],
			b.data.Weather.OutdoorDryBulbTemperature[t],
		)
		b.baselineNet[t] = cooling + b.data.Energy.NonShiftableLoad[t] - b.solarGeneration[t]
	}
}

func (b *Building) Name() string  { return b.name }
func (b *Building) TimeStep() int { return b.timeStep }
func (b *Building) Horizon() int  { return len(b.data.Energy.Hour) }

// Reset restores the building and its devices to step 0.
func (b *Building) Reset() {
	b.timeStep = 0
	b.battery.Reset()
	b.coolingConsumption = b.coolingConsumption[:0]
	b.netConsumption = b.netConsumption[:0]
	b.netConsumptionPrice = b.netConsumptionPrice[:0]
	b.netConsumptionEmission = b.netConsumptionEmission[:0]
	b.updateVariables()
}

// Step advances one time step applying the battery action, a fraction of
// capacity in [-1, 1] to charge (positive) or discharge (negative).
func (b *Building) Step(batteryAction float64) error {
	if b.timeStep >= b.Horizon()-1 {
		return fmt.Errorf("building %s: stepped past the simulation horizon", b.name)
	}
	if batteryAction > 1 {
		batteryAction = 1
	}
	if batteryAction < -1 {
		batteryAction = -1
	}
	b.timeStep++
	b.battery.Charge(batteryAction * b.battery.Capacity())
	b.updateVariables()
	return nil
}

func (b *Building) updateVariables() {
	t := b.timeStep
	cooling := b.coolingDevice.InputPower(
		b.data.Energy.CoolingDemand[t],
		b.data.Weather.OutdoorDryBulbTemperature[t],
	)
	storage := b.battery.ElectricityConsumption()[t]
	net := cooling + storage + b.data.Energy.NonShiftableLoad[t] - b.solarGeneration[t]

	b.coolingConsumption = append(b.coolingConsumption, cooling)
	b.netConsumption = append(b.netConsumption, net)
	b.netConsumptionPrice = append(b.netConsumptionPrice, net*b.data.Pricing.ElectricityPricing[t])
	b.netConsumptionEmission = append(b.netConsumptionEmission, math.Max(0, net*b.data.Carbon.CarbonIntensity[t]))
}

// NetElectricityConsumption returns the controlled net consumption series up
// to the current step, in kWh.
func (b *Building) NetElectricityConsumption() []float64 {
	return append([]float64(nil), b.netConsumption...)
}

func (b *Building) NetElectricityConsumptionPrice() []float64 {
	return append([]float64(nil), b.netConsumptionPrice...)
}

func (b *Building) NetElectricityConsumptionEmission() []float64 {
	return append([]float64(nil), b.netConsumptionEmission...)
}

// BaselineNetElectricityConsumption returns the full-horizon net consumption
// with the battery held idle, used for KPI normalization.
func (b *Building) BaselineNetElectricityConsumption() []float64 {
	return append([]float64(nil), b.baselineNet...)
}

func (b *Building) BaselineNetElectricityConsumptionPrice() []float64 {
	out := make([]float64, len(b.baselineNet))
	for t, net := range b.baselineNet {
		out[t] = net * b.data.Pricing.ElectricityPricing[t]
	}
	return out
}

func (b *Building) BaselineNetElectricityConsumptionEmission() []float64 {
	out := make([]float64, len(b.baselineNet))
	for t, net := range b.baselineNet {
		out[t] = math.Max(0, net*b.data.Carbon.CarbonIntensity[t])
	}
	return out
}
