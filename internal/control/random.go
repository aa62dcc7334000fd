package control

import (
	"context"
	"math/rand"

	"gridlearn/internal/district"
)

// RandomController samples each action uniformly within the environment's
// action bounds.
type RandomController struct {
	lows  [][]float64
	highs [][]float64
	rng   *rand.Rand
}

func NewRandomController(env *district.District, seed int64) *RandomController {
	lows, highs := env.ActionBounds()
	return &RandomController{
		lows:  lows,
		highs: highs,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (c *RandomController) ID() string { return "random" }

func (c *RandomController) Predict(ctx context.Context, _ [][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	actions := make([][]float64, len(c.lows))
	for i := range c.lows {
		action := make([]float64, len(c.lows[i]))
		for j := range action {
			low, high := c.lows[i][j], c.highs[i][j]
			action[j] = low + (high-low)*c.rng.Float64()
		}
		actions[i] = action
	}
	return actions, nil
}
