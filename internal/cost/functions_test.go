package cost

import (
	"math"
	"testing"
)

func TestRamping(t *testing.T) {
	out := Ramping([]float64{1, 3, 2, 2})
	if !math.IsNaN(out[0]) {
		t.Fatalf("expected NaN at step 0, got %v", out[0])
	}
	want := []float64{2, 3, 3}
	for i, w := range want {
		if out[i+1] != w {
			t.Fatalf("ramping[%d] = %v, want %v", i+1, out[i+1], w)
		}
	}
}

func TestLoadFactorWindow(t *testing.T) {
	out := LoadFactor([]float64{2, 4, 4, 2}, 2)
	if !math.IsNaN(out[0]) {
		t.Fatalf("expected NaN before a full window, got %v", out[0])
	}
	// windows: [2 4] -> 1-3/4, [4 4] -> 0, [4 2] -> 1-3/4
	if math.Abs(out[1]-0.25) > 1e-12 {
		t.Fatalf("load factor[1] = %v, want 0.25", out[1])
	}
	if math.Abs(out[2]-0.125) > 1e-12 {
		t.Fatalf("load factor[2] = %v, want 0.125", out[2])
	}
	if math.Abs(out[3]-0.25/3*2) > 1e-12 {
		t.Fatalf("load factor[3] = %v, want %v", out[3], 0.25/3*2)
	}
}

func TestLoadFactorZeroMaxIsNaN(t *testing.T) {
	out := LoadFactor([]float64{0, 0, 0}, 2)
	for i, value := range out {
		if !math.IsNaN(value) {
			t.Fatalf("expected NaN at %d for an all-zero series, got %v", i, value)
		}
	}
}

func TestAverageDailyPeak(t *testing.T) {
	out := AverageDailyPeak([]float64{1, 5, 2, 3}, 2)
	if !math.IsNaN(out[0]) {
		t.Fatalf("expected NaN before a full day, got %v", out[0])
	}
	// rolling maxima: 5, 5, 3
	if out[1] != 5 {
		t.Fatalf("daily peak[1] = %v, want 5", out[1])
	}
	if out[2] != 5 {
		t.Fatalf("daily peak[2] = %v, want 5", out[2])
	}
	if math.Abs(out[3]-13.0/3) > 1e-12 {
		t.Fatalf("daily peak[3] = %v, want %v", out[3], 13.0/3)
	}
}

func TestPeakDemand(t *testing.T) {
	net := []float64{1, 5, 2, 3}
	out := PeakDemand(net, len(net))
	for i := 0; i < len(net)-1; i++ {
		if !math.IsNaN(out[i]) {
			t.Fatalf("expected NaN at %d, got %v", i, out[i])
		}
	}
	if out[len(net)-1] != 5 {
		t.Fatalf("peak demand = %v, want 5", out[len(net)-1])
	}
}

func TestNetElectricityConsumptionClipsExports(t *testing.T) {
	out := NetElectricityConsumption([]float64{2, -3, 1})
	want := []float64{2, 2, 3}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("consumption[%d] = %v, want %v", i, out[i], w)
		}
	}
}

func TestQuadratic(t *testing.T) {
	out := Quadratic([]float64{2, -3, 1})
	want := []float64{4, 4, 5}
	for i, w := range want {
		if out[i] != w {
			t.Fatalf("quadratic[%d] = %v, want %v", i, out[i], w)
		}
	}
}

func TestPriceAndCarbonAreCumulative(t *testing.T) {
	price := Price([]float64{1, 2, -0.5})
	if price[2] != 2.5 {
		t.Fatalf("price = %v, want 2.5", price[2])
	}
	carbon := CarbonEmissions([]float64{0.5, 0.5})
	if carbon[1] != 1 {
		t.Fatalf("carbon = %v, want 1", carbon[1])
	}
}
