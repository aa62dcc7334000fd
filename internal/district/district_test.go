package district

import (
	"context"
	"math/rand"
	"testing"

	"gridlearn/internal/data"
)

func testDistrict(t *testing.T, opts ...Option) *District {
	t.Helper()
	dataset, err := data.Lookup("demo-district-4")
	if err != nil {
		t.Fatalf("lookup dataset: %v", err)
	}
	d, err := New(dataset, opts...)
	if err != nil {
		t.Fatalf("new district: %v", err)
	}
	return d
}

func idleActions(d *District) [][]float64 {
	actions := make([][]float64, len(d.Buildings()))
	for i := range actions {
		actions[i] = []float64{0}
	}
	return actions
}

func TestDistrictResetShapes(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t)

	obs, err := d.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(obs) != 4 {
		t.Fatalf("observation entities = %d, want 4", len(obs))
	}
	names := d.ObservationNames()
	for i := range obs {
		if len(obs[i]) != len(names[i]) {
			t.Fatalf("entity %d: %d observations, %d names", i, len(obs[i]), len(names[i]))
		}
	}
}

func TestDistrictStepValidatesActionShape(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t)
	if _, err := d.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, _, _, err := d.Step(ctx, [][]float64{{0}}); err == nil {
		t.Fatal("expected an error for too few action vectors")
	}
	if _, _, _, err := d.Step(ctx, [][]float64{{0, 0}, {0}, {0}, {0}}); err == nil {
		t.Fatal("expected an error for a malformed action vector")
	}
}

func TestDistrictEpisodeTermination(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t)
	if _, err := d.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	done := false
	steps := 0
	for !done {
		var err error
		_, _, done, err = d.Step(ctx, idleActions(d))
		if err != nil {
			t.Fatalf("step %d: %v", steps, err)
		}
		steps++
	}
	if steps != d.Horizon()-1 {
		t.Fatalf("episode length = %d, want %d", steps, d.Horizon()-1)
	}
	if !d.Done() {
		t.Fatal("expected district to report done")
	}
	if _, _, _, err := d.Step(ctx, idleActions(d)); err == nil {
		t.Fatal("expected an error stepping a finished episode")
	}
}

func TestDistrictRewardsArePerBuilding(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t)
	if _, err := d.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	_, rewards, _, err := d.Step(ctx, idleActions(d))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(rewards) != 4 {
		t.Fatalf("rewards = %d entries, want 4", len(rewards))
	}
	for i, reward := range rewards {
		if reward > 0 {
			t.Fatalf("reward %d = %v, want <= 0", i, reward)
		}
	}
}

func TestCentralDistrictAggregates(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t, WithCentralAgent())

	obs, err := d.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(obs) != 1 {
		t.Fatalf("central observation entities = %d, want 1", len(obs))
	}
	names := d.ObservationNames()
	if len(names) != 1 || len(names[0]) != len(obs[0]) {
		t.Fatalf("central names do not match observations: %d vs %d", len(names[0]), len(obs[0]))
	}

	_, rewards, _, err := d.Step(ctx, idleActions(d))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(rewards) != 1 {
		t.Fatalf("central rewards = %d entries, want 1", len(rewards))
	}

	lows, highs := d.ActionBounds()
	if len(lows) != 4 || len(highs) != 4 {
		t.Fatal("central districts still take per-building actions")
	}
}

func TestDistrictStepHonorsContext(t *testing.T) {
	d := testDistrict(t)
	if _, err := d.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, _, err := d.Step(ctx, idleActions(d)); err == nil {
		t.Fatal("expected a context error")
	}
}

func TestDistrictObservationBoundsContainRandomEpisode(t *testing.T) {
	ctx := context.Background()
	d := testDistrict(t)
	rng := rand.New(rand.NewSource(11))

	obs, err := d.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	lows, highs := d.ObservationBounds()
	checkBounds := func(step int, obs [][]float64) {
		t.Helper()
		if len(obs) != len(lows) {
			t.Fatalf("step %d: %d entities, bounds have %d", step, len(obs), len(lows))
		}
		for i := range obs {
			for j, value := range obs[i] {
				if value < lows[i][j] || value > highs[i][j] {
					t.Fatalf("step %d entity %d obs %d = %v outside [%v, %v]",
						step, i, j, value, lows[i][j], highs[i][j])
				}
			}
		}
	}
	checkBounds(0, obs)

	actLows, actHighs := d.ActionBounds()
	step := 0
	for !d.Done() {
		actions := make([][]float64, len(actLows))
		for i := range actions {
			actions[i] = make([]float64, len(actLows[i]))
			for j := range actions[i] {
				actions[i][j] = actLows[i][j] + rng.Float64()*(actHighs[i][j]-actLows[i][j])
			}
		}
		obs, _, _, err = d.Step(ctx, actions)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		step++
		checkBounds(step, obs)
	}
}

func TestCentralObservationBoundsShape(t *testing.T) {
	d := testDistrict(t, WithCentralAgent())
	lows, highs := d.ObservationBounds()
	if len(lows) != 1 || len(highs) != 1 {
		t.Fatalf("central bounds entities = %d/%d, want 1", len(lows), len(highs))
	}
	names := d.ObservationNames()
	if len(lows[0]) != len(names[0]) {
		t.Fatalf("central bounds = %d values, names = %d", len(lows[0]), len(names[0]))
	}
}
