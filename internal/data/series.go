package data

import "fmt"

// EnergySeries holds the per-building simulation time series. All slices must
// share a length; one entry is one hour.
type EnergySeries struct {
	Month            []int
	Hour             []int
	DayType          []int
	NonShiftableLoad []float64
	CoolingDemand    []float64
	SolarGeneration  []float64 // inverter output per kW of installed PV, in W/kW
}

// Weather holds outdoor conditions aligned with EnergySeries.
type Weather struct {
	OutdoorDryBulbTemperature []float64 // C
	DirectSolarIrradiance     []float64 // W/m^2
	DiffuseSolarIrradiance    []float64 // W/m^2
}

// Pricing holds the grid electricity price series in $/kWh.
type Pricing struct {
	ElectricityPricing []float64
}

// CarbonIntensity holds the grid emission rate series in kg_co2/kWh.
type CarbonIntensity struct {
	CarbonIntensity []float64
}

type BatterySpec struct {
	Capacity        float64 `json:"capacity"`
	NominalPower    float64 `json:"nominal_power"`
	Efficiency      float64 `json:"efficiency"`
	LossCoefficient float64 `json:"loss_coefficient"`
}

type PVSpec struct {
	NominalPower float64 `json:"nominal_power"`
}

type HeatPumpSpec struct {
	NominalPower      float64 `json:"nominal_power"`
	Efficiency        float64 `json:"efficiency"`
	TargetTemperature float64 `json:"target_cooling_temperature"`
}

// BuildingData is everything needed to simulate one building: its load and
// weather series plus the device sizing.
type BuildingData struct {
	Name          string
	Energy        EnergySeries
	Weather       Weather
	Pricing       Pricing
	Carbon        CarbonIntensity
	Battery       BatterySpec
	PV            PVSpec
	CoolingDevice HeatPumpSpec
}

// Dataset is a named collection of buildings sharing a time horizon.
type Dataset struct {
	Name        string
	Description string
	Buildings   []BuildingData
}

// Horizon returns the shared number of time steps.
func (d Dataset) Horizon() int {
	if len(d.Buildings) == 0 {
		return 0
	}
	return len(d.Buildings[0].Energy.Hour)
}

func (d Dataset) Validate() error {
	if len(d.Buildings) == 0 {
		return fmt.Errorf("dataset %s has no buildings", d.Name)
	}
	horizon := d.Horizon()
	if horizon == 0 {
		return fmt.Errorf("dataset %s has an empty time series", d.Name)
	}
	for _, building := range d.Buildings {
		if err := building.Validate(); err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}
		if len(building.Energy.Hour) != horizon {
			return fmt.Errorf("dataset %s: building %s horizon %d does not match %d",
				d.Name, building.Name, len(building.Energy.Hour), horizon)
		}
	}
	return nil
}

func (b BuildingData) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("building name is required")
	}
	n := len(b.Energy.Hour)
	if n == 0 {
		return fmt.Errorf("building %s has an empty energy series", b.Name)
	}

	lengths := map[string]int{
		"month":                        len(b.Energy.Month),
		"day_type":                     len(b.Energy.DayType),
		"non_shiftable_load":           len(b.Energy.NonShiftableLoad),
		"cooling_demand":               len(b.Energy.CoolingDemand),
		"solar_generation":             len(b.Energy.SolarGeneration),
		"outdoor_dry_bulb_temperature": len(b.Weather.OutdoorDryBulbTemperature),
		"direct_solar_irradiance":      len(b.Weather.DirectSolarIrradiance),
		"diffuse_solar_irradiance":     len(b.Weather.DiffuseSolarIrradiance),
		"electricity_pricing":          len(b.Pricing.ElectricityPricing),
		"carbon_intensity":             len(b.Carbon.CarbonIntensity),
	}
	for name, length := range lengths {
		if length != n {
			return fmt.Errorf("building %s: series %s has %d entries, want %d", b.Name, name, length, n)
		}
	}

	for i, hour := range b.Energy.Hour {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("building %s: hour out of range at step %d: %d", b.Name, i, hour)
		}
	}
	for i, month := range b.Energy.Month {
		if month < 1 || month > 12 {
			return fmt.Errorf("building %s: month out of range at step %d: %d", b.Name, i, month)
		}
	}
	for i, load := range b.Energy.NonShiftableLoad {
		if load < 0 {
			return fmt.Errorf("building %s: negative non-shiftable load at step %d", b.Name, i)
		}
	}
	for i, demand := range b.Energy.CoolingDemand {
		if demand < 0 {
			return fmt.Errorf("building %s: negative cooling demand at step %d", b.Name, i)
		}
	}

	if b.Battery.Capacity < 0 || b.Battery.NominalPower < 0 {
		return fmt.Errorf("building %s: negative battery sizing", b.Name)
	}
	if b.Battery.Capacity > 0 {
		if b.Battery.Efficiency <= 0 || b.Battery.Efficiency > 1 {
			return fmt.Errorf("building %s: battery efficiency out of range: %v", b.Name, b.Battery.Efficiency)
		}
		if b.Battery.LossCoefficient < 0 || b.Battery.LossCoefficient >= 1 {
			return fmt.Errorf("building %s: battery loss coefficient out of range: %v", b.Name, b.Battery.LossCoefficient)
		}
	}
	return nil
}
