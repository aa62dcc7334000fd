package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Schema describes a user-supplied dataset on disk: one JSON file naming the
// district plus per-building CSV series. Relative CSV paths resolve against
// the schema file's directory.
type Schema struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Buildings   []BuildingSchema `json:"buildings"`
}

type BuildingSchema struct {
	Name             string       `json:"name"`
	EnergySimulation string       `json:"energy_simulation"`
	Weather          string       `json:"weather"`
	Pricing          string       `json:"pricing"`
	CarbonIntensity  string       `json:"carbon_intensity"`
	Battery          BatterySpec  `json:"battery"`
	PV               PVSpec       `json:"pv"`
	CoolingDevice    HeatPumpSpec `json:"cooling_device"`
}

// LoadSchema reads a schema JSON file and every CSV it references, returning
// a validated dataset.
func LoadSchema(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	var schema Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return Dataset{}, fmt.Errorf("parse schema %s: %w", path, err)
	}
	if strings.TrimSpace(schema.Name) == "" {
		return Dataset{}, fmt.Errorf("schema %s: dataset name is required", path)
	}
	if len(schema.Buildings) == 0 {
		return Dataset{}, fmt.Errorf("schema %s: at least one building is required", path)
	}

	baseDir := filepath.Dir(path)
	dataset := Dataset{
		Name:        schema.Name,
		Description: schema.Description,
		Buildings:   make([]BuildingData, 0, len(schema.Buildings)),
	}
	for _, entry := range schema.Buildings {
		building, err := loadBuilding(baseDir, entry)
		if err != nil {
			return Dataset{}, fmt.Errorf("schema %s: %w", path, err)
		}
		dataset.Buildings = append(dataset.Buildings, building)
	}
	if err := dataset.Validate(); err != nil {
		return Dataset{}, err
	}
	return dataset, nil
}

func loadBuilding(baseDir string, entry BuildingSchema) (BuildingData, error) {
	energy, err := loadColumns(resolvePath(baseDir, entry.EnergySimulation),
		"month", "hour", "day_type", "non_shiftable_load", "cooling_demand", "solar_generation")
	if err != nil {
		return BuildingData{}, fmt.Errorf("building %s: %w", entry.Name, err)
	}
	weather, err := loadColumns(resolvePath(baseDir, entry.Weather),
		"outdoor_dry_bulb_temperature", "direct_solar_irradiance", "diffuse_solar_irradiance")
	if err != nil {
		return BuildingData{}, fmt.Errorf("building %s: %w", entry.Name, err)
	}
	pricing, err := loadColumns(resolvePath(baseDir, entry.Pricing), "electricity_pricing")
	if err != nil {
		return BuildingData{}, fmt.Errorf("building %s: %w", entry.Name, err)
	}
	carbon, err := loadColumns(resolvePath(baseDir, entry.CarbonIntensity), "carbon_intensity")
	if err != nil {
		return BuildingData{}, fmt.Errorf("building %s: %w", entry.Name, err)
	}

	return BuildingData{
		Name: entry.Name,
		Energy: EnergySeries{
			Month:            toInts(energy["month"]),
			Hour:             toInts(energy["hour"]),
			DayType:          toInts(energy["day_type"]),
			NonShiftableLoad: energy["non_shiftable_load"],
			CoolingDemand:    energy["cooling_demand"],
			SolarGeneration:  energy["solar_generation"],
		},
		Weather: Weather{
			OutdoorDryBulbTemperature: weather["outdoor_dry_bulb_temperature"],
			DirectSolarIrradiance:     weather["direct_solar_irradiance"],
			DiffuseSolarIrradiance:    weather["diffuse_solar_irradiance"],
		},
		Pricing:       Pricing{ElectricityPricing: pricing["electricity_pricing"]},
		Carbon:        CarbonIntensity{CarbonIntensity: carbon["carbon_intensity"]},
		Battery:       entry.Battery,
		PV:            entry.PV,
		CoolingDevice: entry.CoolingDevice,
	}, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func toInts(values []float64) []int {
	out := make([]int, len(values))
	for i, value := range values {
		out[i] = int(value)
	}
	return out
}
