package building

import "fmt"

// ObservationNames returns the active observation names in emission order.
func (b *Building) ObservationNames() []string {
	return append([]string(nil), b.activeObservations...)
}

// SetActiveObservations narrows the observation set. Every name must be one
// the building can emit.
func (b *Building) SetActiveObservations(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("building %s: at least one observation is required", b.name)
	}
	known := make(map[string]bool, len(DefaultObservations))
	for _, name := range DefaultObservations {
		known[name] = true
	}
	for _, name := range names {
		if !known[name] {
			return fmt.Errorf("building %s: unknown observation: %s", b.name, name)
		}
	}
	b.activeObservations = append([]string(nil), names...)
	return nil
}

// Observations returns the current step's observation vector, ordered by
// ObservationNames.
func (b *Building) Observations() []float64 {
	t := b.timeStep
	values := map[string]float64{
		"month":                        float64(b.data.Energy.Month[t]),
		"hour":                         float64(b.data.Energy.Hour[t]),
		"day_type":                     float64(b.data.Energy.DayType[t]),
		"outdoor_dry_bulb_temperature": b.data.Weather.OutdoorDryBulbTemperature[t],
		"direct_solar_irradiance":      b.data.Weather.DirectSolarIrradiance[t],
		"non_shiftable_load":           b.data.Energy.NonShiftableLoad[t],
		"cooling_demand":               b.data.Energy.CoolingDemand[t],
		"solar_generation":             b.solarGeneration[t],
		"electrical_storage_soc":       b.battery.NormalizedSOC(),
		"net_electricity_consumption":  b.netConsumption[len(b.netConsumption)-1],
		"electricity_pricing":          b.data.Pricing.ElectricityPricing[t],
		"carbon_intensity":             b.data.Carbon.CarbonIntensity[t],
	}
	out := make([]float64, len(b.activeObservations))
	for i, name := range b.activeObservations {
		out[i] = values[name]
	}
	return out
}

// ObservationBounds estimates low/high limits per active observation so an
// agent can scale its inputs. The net consumption bound is a worst-case
// estimate from demand plus full battery throughput plus generation; it is
// deliberately loose.
func (b *Building) ObservationBounds() (low, high []float64) {
	worstNet := 0.0
	for t := range b.data.Energy.Hour {
		throughput := 0.0
		if b.data.Battery.Efficiency > 0 {
			throughput = b.data.Battery.Capacity / b.data.Battery.Efficiency
		}
		candidate := b.data.Energy.NonShiftableLoad[t] +
			b.data.Energy.CoolingDemand[t] +
			throughput +
			b.solarGeneration[t]
		if candidate > worstNet {
			worstNet = candidate
		}
	}

	low = make([]float64, len(b.activeObservations))
	high = make([]float64, len(b.activeObservations))
	for i, name := range b.activeObservations {
		switch name {
		case "electrical_storage_soc":
			low[i], high[i] = 0, 1
		case "net_electricity_consumption":
			low[i], high[i] = -worstNet, worstNet
		case "cooling_demand":
			low[i], high[i] = 0, seriesMax(b.data.Energy.CoolingDemand)*2.5
		case "month":
			low[i], high[i] = intSeriesBounds(b.data.Energy.Month)
		case "hour":
			low[i], high[i] = intSeriesBounds(b.data.Energy.Hour)
		case "day_type":
			low[i], high[i] = intSeriesBounds(b.data.Energy.DayType)
		case "outdoor_dry_bulb_temperature":
			low[i], high[i] = seriesBounds(b.data.Weather.OutdoorDryBulbTemperature)
		case "direct_solar_irradiance":
			low[i], high[i] = seriesBounds(b.data.Weather.DirectSolarIrradiance)
		case "non_shiftable_load":
			low[i], high[i] = seriesBounds(b.data.Energy.NonShiftableLoad)
		case "solar_generation":
			low[i], high[i] = seriesBounds(b.solarGeneration)
		case "electricity_pricing":
			low[i], high[i] = seriesBounds(b.data.Pricing.ElectricityPricing)
		case "carbon_intensity":
			low[i], high[i] = seriesBounds(b.data.Carbon.CarbonIntensity)
		}
	}
	return low, high
}

// ActionBounds returns low/high limits for the building's action vector.
// A single battery action in [-1, 1].
func (b *Building) ActionBounds() (low, high []float64) {
	return []float64{-1}, []float64{1}
}

func seriesBounds(values []float64) (low, high float64) {
	low, high = values[0], values[0]
	for _, value := range values[1:] {
		if value < low {
			low = value
		}
		if value > high {
			high = value
		}
	}
	return low, high
}

func seriesMax(values []float64) float64 {
	_, high := seriesBounds(values)
	return high
}

func intSeriesBounds(values []int) (low, high float64) {
	low, high = float64(values[0]), float64(values[0])
	for _, value := range values[1:] {
		if float64(value) < low {
			low = float64(value)
		}
		if float64(value) > high {
			high = float64(value)
		}
	}
	return low, high
}
