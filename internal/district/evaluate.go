package district

import (
	"math"

	"gridlearn/internal/cost"
	"gridlearn/internal/model"
)

// KPI names, in report order.
const (
	KPIRamping                = "ramping"
	KPILoadFactor             = "load_factor"
	KPIAverageDailyPeak       = "average_daily_peak"
	KPIPeakDemand             = "peak_demand"
	KPIElectricityConsumption = "electricity_consumption"
	KPICarbonEmissions        = "carbon_emissions"
	KPICost                   = "cost"
)

// DistrictEntity is the entity name for district-level KPI records.
const DistrictEntity = "District"

const (
	dailyTimeSteps          = 24
	defaultLoadFactorWindow = 730
)

// Evaluate scores the simulated steps so far against the no-flexibility
// baseline. Building records carry the per-meter cost functions; grid-level
// cost functions (ramping, load factor, peaks) are reported for the district
// only. A value below 1 means the controller beat the baseline.
func (d *District) Evaluate() []model.KPIRecord {
	steps := d.TimeStep() + 1
	records := make([]model.KPIRecord, 0, 3*len(d.buildings)+7)

	districtControl := make([]float64, steps)
	districtBaseline := make([]float64, steps)
	districtControlPrice := make([]float64, steps)
	districtBaselinePrice := make([]float64, steps)
	districtControlEmission := make([]float64, steps)
	districtBaselineEmission := make([]float64, steps)

	for _, b := range d.buildings {
		control := b.NetElectricityConsumption()
		baseline := b.BaselineNetElectricityConsumption()[:steps]
		controlPrice := b.NetElectricityConsumptionPrice()
		baselinePrice := b.BaselineNetElectricityConsumptionPrice()[:steps]
		controlEmission := b.NetElectricityConsumptionEmission()
		baselineEmission := b.BaselineNetElectricityConsumptionEmission()[:steps]

		accumulate(districtControl, control)
		accumulate(districtBaseline, baseline)
		accumulate(districtControlPrice, controlPrice)
		accumulate(districtBaselinePrice, baselinePrice)
		accumulate(districtControlEmission, controlEmission)
		accumulate(districtBaselineEmission, baselineEmission)

		records = append(records,
			model.KPIRecord{
				Name:   KPIElectricityConsumption,
				Entity: b.Name(),
				Value:  finalRatio(cost.NetElectricityConsumption(control), cost.NetElectricityConsumption(baseline)),
			},
			model.KPIRecord{
				Name:   KPICost,
				Entity: b.Name(),
				Value:  finalRatio(cost.Price(controlPrice), cost.Price(baselinePrice)),
			},
			model.KPIRecord{
				Name:   KPICarbonEmissions,
				Entity: b.Name(),
				Value:  finalRatio(cost.CarbonEmissions(controlEmission), cost.CarbonEmissions(baselineEmission)),
			},
		)
	}

	loadFactorWindow := defaultLoadFactorWindow
	if steps < loadFactorWindow {
		loadFactorWindow = steps
	}

	records = append(records,
		model.KPIRecord{
			Name:   KPIRamping,
			Entity: DistrictEntity,
			Value:  finalRatio(cost.Ramping(districtControl), cost.Ramping(districtBaseline)),
		},
		model.KPIRecord{
			Name:   KPILoadFactor,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.LoadFactor(districtControl, loadFactorWindow),
				cost.LoadFactor(districtBaseline, loadFactorWindow),
			),
		},
		model.KPIRecord{
			Name:   KPIAverageDailyPeak,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.AverageDailyPeak(districtControl, dailyTimeSteps),
				cost.AverageDailyPeak(districtBaseline, dailyTimeSteps),
			),
		},
		model.KPIRecord{
			Name:   KPIPeakDemand,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.PeakDemand(districtControl, steps),
				cost.PeakDemand(districtBaseline, steps),
			),
		},
		model.KPIRecord{
			Name:   KPIElectricityConsumption,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.NetElectricityConsumption(districtControl),
				cost.NetElectricityConsumption(districtBaseline),
			),
		},
		model.KPIRecord{
			Name:   KPICarbonEmissions,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.CarbonEmissions(districtControlEmission),
				cost.CarbonEmissions(districtBaselineEmission),
			),
		},
		model.KPIRecord{
			Name:   KPICost,
			Entity: DistrictEntity,
			Value: finalRatio(
				cost.Price(districtControlPrice),
				cost.Price(districtBaselinePrice),
			),
		},
	)
	return records
}

func accumulate(dst, src []float64) {
	for i := range src {
		dst[i] += src[i]
	}
}

// finalRatio divides the final entries of two cost series, NaN when either is
// undefined or the baseline is zero.
func finalRatio(control, baseline []float64) float64 {
	if len(control) == 0 || len(baseline) == 0 {
		return math.NaN()
	}
	c := control[len(control)-1]
	b := baseline[len(baseline)-1]
	if math.IsNaN(c) || math.IsNaN(b) || b == 0 {
		return math.NaN()
	}
	return c / b
}
