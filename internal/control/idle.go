package control

import (
	"context"

	"gridlearn/internal/district"
)

// IdleController always issues zero actions, leaving every battery untouched.
// It reproduces the no-flexibility baseline and anchors KPI ratios at 1.
type IdleController struct {
	buildings int
}

func NewIdleController(env *district.District) *IdleController {
	return &IdleController{buildings: len(env.Buildings())}
}

func (c *IdleController) ID() string { return "idle" }

func (c *IdleController) Predict(ctx context.Context, _ [][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	actions := make([][]float64, c.buildings)
	for i := range actions {
		actions[i] = []float64{0}
	}
	return actions, nil
}
