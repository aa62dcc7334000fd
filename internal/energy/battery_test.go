package energy

import (
	"math"
	"testing"
)

func TestBatteryChargeAppliesEfficiency(t *testing.T) {
	b, err := NewBattery(10, 5, 0.9, 0)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}

	b.Charge(2)
	if math.Abs(b.SOC()-1.8) > 1e-12 {
		t.Fatalf("soc = %v, want 1.8", b.SOC())
	}
	consumption := b.ElectricityConsumption()
	if math.Abs(consumption[len(consumption)-1]-2) > 1e-12 {
		t.Fatalf("charge draw = %v, want 2", consumption[len(consumption)-1])
	}
}

func TestBatteryDischargeAppliesEfficiency(t *testing.T) {
	b, err := NewBattery(10, 5, 0.9, 0)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(5)
	soc := b.SOC()

	b.Charge(-2)
	delivered := 2 * 0.9
	if math.Abs(b.SOC()-(soc-2)) > 1e-12 {
		t.Fatalf("soc = %v, want %v", b.SOC(), soc-2)
	}
	consumption := b.ElectricityConsumption()
	if math.Abs(consumption[len(consumption)-1]+delivered) > 1e-12 {
		t.Fatalf("discharge supply = %v, want %v", consumption[len(consumption)-1], -delivered)
	}
}

func TestBatteryClampsToNominalPower(t *testing.T) {
	b, err := NewBattery(100, 5, 1, 0)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(50)
	if b.SOC() != 5 {
		t.Fatalf("soc = %v, want 5", b.SOC())
	}
}

func TestBatteryClampsToCapacity(t *testing.T) {
	b, err := NewBattery(3, 10, 1, 0)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(10)
	if b.SOC() != 3 {
		t.Fatalf("soc = %v, want 3", b.SOC())
	}
	b.Charge(-10)
	if b.SOC() != 0 {
		t.Fatalf("soc after full discharge = %v, want 0", b.SOC())
	}
}

func TestBatteryStandingLoss(t *testing.T) {
	b, err := NewBattery(10, 10, 1, 0.1)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(5)
	b.Charge(0)
	if math.Abs(b.SOC()-4.5) > 1e-12 {
		t.Fatalf("soc = %v, want 4.5", b.SOC())
	}
}

func TestBatteryResetSeedsIdleStep(t *testing.T) {
	b, err := NewBattery(10, 5, 0.9, 0.006)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(2)
	b.Reset()

	if b.SOC() != 0 {
		t.Fatalf("soc after reset = %v, want 0", b.SOC())
	}
	if history := b.SOCHistory(); len(history) != 1 || history[0] != 0 {
		t.Fatalf("unexpected soc history: %v", history)
	}
	if consumption := b.ElectricityConsumption(); len(consumption) != 1 || consumption[0] != 0 {
		t.Fatalf("unexpected consumption history: %v", consumption)
	}
}

func TestBatteryValidation(t *testing.T) {
	cases := []struct {
		name                                         string
		capacity, power, efficiency, lossCoefficient float64
	}{
		{"negative capacity", -1, 5, 0.9, 0},
		{"negative power", 10, -5, 0.9, 0},
		{"zero efficiency", 10, 5, 0, 0},
		{"efficiency above one", 10, 5, 1.5, 0},
		{"loss coefficient one", 10, 5, 0.9, 1},
	}
	for _, tc := range cases {
		if _, err := NewBattery(tc.capacity, tc.power, tc.efficiency, tc.lossCoefficient); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestZeroCapacityBatteryIgnoresCommands(t *testing.T) {
	b, err := NewBattery(0, 0, 0, 0)
	if err != nil {
		t.Fatalf("new battery: %v", err)
	}
	b.Charge(3)
	if b.SOC() != 0 {
		t.Fatalf("soc = %v, want 0", b.SOC())
	}
	consumption := b.ElectricityConsumption()
	if consumption[len(consumption)-1] != 0 {
		t.Fatalf("draw = %v, want 0", consumption[len(consumption)-1])
	}
}
