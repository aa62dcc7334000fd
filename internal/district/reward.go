package district

import (
	"math"

	"gridlearn/internal/building"
)

// Function scores one building at its current time step. Rewards are
// non-positive: zero is the best achievable step.
type Function func(*building.Building) float64

// NegativeConsumption penalizes grid imports, the default reward. Exports are
// not rewarded.
func NegativeConsumption(b *building.Building) float64 {
	net := b.NetElectricityConsumption()
	return -math.Max(0, net[len(net)-1])
}

// NegativePrice penalizes the electricity bill for the step.
func NegativePrice(b *building.Building) float64 {
	price := b.NetElectricityConsumptionPrice()
	return -math.Max(0, price[len(price)-1])
}

// NegativeEmission penalizes the carbon emitted for the step.
func NegativeEmission(b *building.Building) float64 {
	emission := b.NetElectricityConsumptionEmission()
	return -emission[len(emission)-1]
}
