package district

import (
	"context"
	"fmt"

	"gridlearn/internal/building"
	"gridlearn/internal/data"
)

// District is the multi-building control environment. One episode walks the
// shared time series from step 0 to the horizon; actions are per-building
// battery commands.
type District struct {
	name      string
	buildings []*building.Building
	central   bool
	reward    Function
}

type Option func(*District)

// WithCentralAgent collapses observations and rewards into a single aggregate
// for one district-wide controller.
func WithCentralAgent() Option {
	return func(d *District) { d.central = true }
}

// WithReward overrides the default reward function.
func WithReward(fn Function) Option {
	return func(d *District) { d.reward = fn }
}

// New builds a district from a validated dataset.
func New(dataset data.Dataset, opts ...Option) (*District, error) {
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	buildings := make([]*building.Building, 0, len(dataset.Buildings))
	for _, buildingData := range dataset.Buildings {
		b, err := building.New(buildingData)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	d := &District{
		name:      dataset.Name,
		buildings: buildings,
		reward:    NegativeConsumption,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *District) Name() string { return d.name }

// Central reports whether the district aggregates for a single controller.
func (d *District) Central() bool { return d.central }

func (d *District) Buildings() []*building.Building {
	return append([]*building.Building(nil), d.buildings...)
}

// Horizon returns the shared episode length in time steps.
func (d *District) Horizon() int {
	return d.buildings[0].Horizon()
}

// TimeStep returns the current shared time step.
func (d *District) TimeStep() int {
	return d.buildings[0].TimeStep()
}

// Done reports whether the episode has reached the end of the series.
func (d *District) Done() bool {
	return d.TimeStep() >= d.Horizon()-1
}

// Reset restores every building to step 0 and returns the initial
// observations.
func (d *District) Reset(ctx context.Context) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, b := range d.buildings {
		b.Reset()
	}
	return d.observations(), nil
}

// Step applies one action vector per building and advances the simulation.
// Each vector carries the building's battery command. It returns the next
// observations, per-entity rewards, and whether the episode is over.
func (d *District) Step(ctx context.Context, actions [][]float64) ([][]float64, []float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, false, err
	}
	if d.Done() {
		return nil, nil, true, fmt.Errorf("district %s: episode is over, call Reset", d.name)
	}
	if len(actions) != len(d.buildings) {
		return nil, nil, false, fmt.Errorf("district %s: got %d action vectors, want %d",
			d.name, len(actions), len(d.buildings))
	}
	for i, action := range actions {
		if len(action) != 1 {
			return nil, nil, false, fmt.Errorf("district %s: building %s takes 1 action, got %d",
				d.name, d.buildings[i].Name(), len(action))
		}
	}

	for i, b := range d.buildings {
		if err := b.Step(actions[i][0]); err != nil {
			return nil, nil, false, err
		}
	}
	return d.observations(), d.rewards(), d.Done(), nil
}

func (d *District) observations() [][]float64 {
	if d.central {
		flat := make([]float64, 0, len(d.buildings)*len(building.DefaultObservations))
		for _, b := range d.buildings {
			flat = append(flat, b.Observations()...)
		}
		return [][]float64{flat}
	}
	out := make([][]float64, len(d.buildings))
	for i, b := range d.buildings {
		out[i] = b.Observations()
	}
	return out
}

func (d *District) rewards() []float64 {
	values := make([]float64, len(d.buildings))
	for i, b := range d.buildings {
		values[i] = d.reward(b)
	}
	if d.central {
		total := 0.0
		for _, value := range values {
			total += value
		}
		return []float64{total}
	}
	return values
}

// ObservationNames returns per-entity observation names matching the shape of
// Reset/Step observations.
func (d *District) ObservationNames() [][]string {
	if d.central {
		flat := make([]string, 0, len(d.buildings)*len(building.DefaultObservations))
		for _, b := range d.buildings {
			for _, name := range b.ObservationNames() {
				flat = append(flat, b.Name()+"."+name)
			}
		}
		return [][]string{flat}
	}
	out := make([][]string, len(d.buildings))
	for i, b := range d.buildings {
		out[i] = b.ObservationNames()
	}
	return out
}

// ActionBounds returns per-building action limits. The shape is always
// per-building even for central districts, since actions apply per battery.
func (d *District) ActionBounds() (lows, highs [][]float64) {
	lows = make([][]float64, len(d.buildings))
	highs = make([][]float64, len(d.buildings))
	for i, b := range d.buildings {
		lows[i], highs[i] = b.ActionBounds()
	}
	return lows, highs
}

// ObservationBounds returns per-entity observation limits matching the shape
// of observations.
func (d *District) ObservationBounds() (lows, highs [][]float64) {
	if d.central {
		var low, high []float64
		for _, b := range d.buildings {
			l, h := b.ObservationBounds()
			low = append(low, l...)
			high = append(high, h...)
		}
		return [][]float64{low}, [][]float64{high}
	}
	lows = make([][]float64, len(d.buildings))
	highs = make([][]float64, len(d.buildings))
	for i, b := range d.buildings {
		lows[i], highs[i] = b.ObservationBounds()
	}
	return lows, highs
}
