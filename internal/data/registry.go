package data

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Built-in datasets are generated deterministically so runs reproduce without
// any files on disk. Each generator uses a fixed seed.
var builtins = map[string]func() Dataset{
	"demo-district-4":  demoDistrict4,
	"district-month-2": districtMonth2,
}

// Lookup returns a named built-in dataset.
func Lookup(name string) (Dataset, error) {
	generate, ok := builtins[strings.TrimSpace(strings.ToLower(name))]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset: %s (known: %s)", name, strings.Join(Names(), ", "))
	}
	dataset := generate()
	if err := dataset.Validate(); err != nil {
		return Dataset{}, err
	}
	return dataset, nil
}

// Names lists the built-in dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func demoDistrict4() Dataset {
	return generateDistrict(districtParams{
		name:        "demo-district-4",
		description: "four buildings over one week, mixed residential profiles",
		seed:        20220717,
		buildings:   4,
		days:        7,
		startMonth:  7,
	})
}

func districtMonth2() Dataset {
	return generateDistrict(districtParams{
		name:        "district-month-2",
		description: "two buildings over thirty days, office profiles",
		seed:        20220801,
		buildings:   2,
		days:        30,
		startMonth:  8,
	})
}

type districtParams struct {
	name        string
	description string
	seed        int64
	buildings   int
	days        int
	startMonth  int
}

func generateDistrict(params districtParams) Dataset {
	rng := rand.New(rand.NewSource(params.seed))
	steps := params.days * 24

	weather := generateWeather(rng, steps)
	pricing := generatePricing(steps)
	carbon := generateCarbon(rng, steps)

	buildings := make([]BuildingData, 0, params.buildings)
	for i := 0; i < params.buildings; i++ {
		building := BuildingData{
			Name:    fmt.Sprintf("Building_%d", i+1),
			Energy:  generateEnergy(rng, steps, params.startMonth),
			Weather: weather,
			Pricing: pricing,
			Carbon:  carbon,
			Battery: BatterySpec{
				Capacity:        6.4,
				NominalPower:    5.0,
				Efficiency:      0.9,
				LossCoefficient: 0.006,
			},
			PV:            PVSpec{NominalPower: 4.0 + 2.0*rng.Float64()},
			CoolingDevice: HeatPumpSpec{NominalPower: 8.0, Efficiency: 0.2, TargetTemperature: 8.0},
		}
		buildings = append(buildings, building)
	}

	return Dataset{
		Name:        params.name,
		Description: params.description,
		Buildings:   buildings,
	}
}

func generateEnergy(rng *rand.Rand, steps, startMonth int) EnergySeries {
	series := EnergySeries{
		Month:            make([]int, steps),
		Hour:             make([]int, steps),
		DayType:          make([]int, steps),
		NonShiftableLoad: make([]float64, steps),
		CoolingDemand:    make([]float64, steps),
		SolarGeneration:  make([]float64, steps),
	}
	base := 0.4 + 0.4*rng.Float64()
	coolingScale := 1.0 + rng.Float64()

	for t := 0; t < steps; t++ {
		hour := t % 24
		day := t / 24
		series.Hour[t] = hour
		series.Month[t] = clampMonth(startMonth + day/30)
		series.DayType[t] = day%7 + 1

		// Morning and evening plug-load peaks with mild noise.
		shape := 0.3 + 0.5*gauss(float64(hour), 8, 2.5) + 1.0*gauss(float64(hour), 19, 3.0)
		series.NonShiftableLoad[t] = base + shape + 0.1*rng.Float64()

		// Cooling tracks afternoon heat.
		series.CoolingDemand[t] = coolingScale * 2.0 * gauss(float64(hour), 15, 3.5)

		// Inverter output per kW of PV peaks at solar noon.
		series.SolarGeneration[t] = 800 * gauss(float64(hour), 12, 3.0) * (0.8 + 0.2*rng.Float64())
	}
	return series
}

func generateWeather(rng *rand.Rand, steps int) Weather {
	weather := Weather{
		OutdoorDryBulbTemperature: make([]float64, steps),
		DirectSolarIrradiance:     make([]float64, steps),
		DiffuseSolarIrradiance:    make([]float64, steps),
	}
	for t := 0; t < steps; t++ {
		hour := float64(t % 24)
		weather.OutdoorDryBulbTemperature[t] = 24 + 8*math.Sin((hour-9)*math.Pi/12) + rng.Float64()
		weather.DirectSolarIrradiance[t] = 900 * gauss(hour, 12, 3.0)
		weather.DiffuseSolarIrradiance[t] = 150 * gauss(hour, 12, 4.0)
	}
	return weather
}

func generatePricing(steps int) Pricing {
	pricing := Pricing{ElectricityPricing: make([]float64, steps)}
	for t := 0; t < steps; t++ {
		hour := t % 24
		price := 0.21
		if hour >= 16 && hour <= 21 {
			price = 0.54
		}
		pricing.ElectricityPricing[t] = price
	}
	return pricing
}

func generateCarbon(rng *rand.Rand, steps int) CarbonIntensity {
	carbon := CarbonIntensity{CarbonIntensity: make([]float64, steps)}
	for t := 0; t < steps; t++ {
		hour := float64(t % 24)
		carbon.CarbonIntensity[t] = 0.15 + 0.1*gauss(hour, 20, 4.0) + 0.01*rng.Float64()
	}
	return carbon
}

func gauss(x, mean, spread float64) float64 {
	d := (x - mean) / spread
	return math.Exp(-0.5 * d * d)
}

func clampMonth(month int) int {
	if month > 12 {
		return 12
	}
	if month < 1 {
		return 1
	}
	return month
}
