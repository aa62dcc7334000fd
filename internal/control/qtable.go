package control

import (
	"context"
	"fmt"
	"math/rand"

	"gridlearn/internal/district"
)

const (
	socBuckets     = 10
	defaultAlpha   = 0.1
	defaultGamma   = 0.95
	defaultEpsilon = 0.3
	epsilonDecay   = 0.85
	minEpsilon     = 0.01
)

// actionLevels are the discrete battery commands the learner chooses from,
// as capacity fractions.
var actionLevels = []float64{-1, -0.5, -0.2, 0, 0.2, 0.5, 1}

// EpsilonGreedyQController is a per-building tabular Q-learner over a
// discretized hour-by-state-of-charge state. Exploration decays per episode.
type EpsilonGreedyQController struct {
	tables     [][]float64 // one table per building, indexed state*len(actionLevels)+action
	hourIndex  [][2]int
	socIndex   [][2]int
	lastChoice []int

	alpha   float64
	gamma   float64
	epsilon float64
	rng     *rand.Rand
}

func NewEpsilonGreedyQController(env *district.District, seed int64) (*EpsilonGreedyQController, error) {
	hourIndex, err := observationIndex(env, "hour")
	if err != nil {
		return nil, fmt.Errorf("q controller: %w", err)
	}
	socIndex, err := observationIndex(env, "electrical_storage_soc")
	if err != nil {
		return nil, fmt.Errorf("q controller: %w", err)
	}

	buildings := len(env.Buildings())
	tables := make([][]float64, buildings)
	for i := range tables {
		tables[i] = make([]float64, 24*socBuckets*len(actionLevels))
	}
	return &EpsilonGreedyQController{
		tables:     tables,
		hourIndex:  hourIndex,
		socIndex:   socIndex,
		lastChoice: make([]int, buildings),
		alpha:      defaultAlpha,
		gamma:      defaultGamma,
		epsilon:    defaultEpsilon,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

func (c *EpsilonGreedyQController) ID() string { return "q-learning" }

// StartEpisode decays exploration; the first episode keeps the initial rate.
func (c *EpsilonGreedyQController) StartEpisode(episode int) {
	if episode <= 1 {
		return
	}
	c.epsilon *= epsilonDecay
	if c.epsilon < minEpsilon {
		c.epsilon = minEpsilon
	}
}

func (c *EpsilonGreedyQController) Predict(ctx context.Context, observations [][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	actions := make([][]float64, len(c.tables))
	for i := range c.tables {
		state, err := c.state(i, observations)
		if err != nil {
			return nil, err
		}
		choice := c.argmax(i, state)
		if c.rng.Float64() < c.epsilon {
			choice = c.rng.Intn(len(actionLevels))
		}
		c.lastChoice[i] = choice
		actions[i] = []float64{actionLevels[choice]}
	}
	return actions, nil
}

// Update applies one Q-learning step per building using the action chosen in
// the preceding Predict call.
func (c *EpsilonGreedyQController) Update(ctx context.Context, observations, actions [][]float64, rewards []float64, next [][]float64, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range c.tables {
		state, err := c.state(i, observations)
		if err != nil {
			return err
		}
		nextState, err := c.state(i, next)
		if err != nil {
			return err
		}

		reward := rewards[0]
		if len(rewards) > 1 {
			reward = rewards[i]
		}

		target := reward
		if !done {
			best := c.argmax(i, nextState)
			target += c.gamma * c.tables[i][nextState*len(actionLevels)+best]
		}
		cell := state*len(actionLevels) + c.lastChoice[i]
		c.tables[i][cell] += c.alpha * (target - c.tables[i][cell])
	}
	return nil
}

// Q returns the current value of a (building, hour, soc bucket, action) cell.
func (c *EpsilonGreedyQController) Q(building, hour, bucket, action int) float64 {
	state := hour*socBuckets + bucket
	return c.tables[building][state*len(actionLevels)+action]
}

// Epsilon returns the current exploration rate.
func (c *EpsilonGreedyQController) Epsilon() float64 { return c.epsilon }

func (c *EpsilonGreedyQController) state(building int, observations [][]float64) (int, error) {
	hourEntity, hourOffset := c.hourIndex[building][0], c.hourIndex[building][1]
	socEntity, socOffset := c.socIndex[building][0], c.socIndex[building][1]
	if hourEntity >= len(observations) || hourOffset >= len(observations[hourEntity]) ||
		socEntity >= len(observations) || socOffset >= len(observations[socEntity]) {
		return 0, fmt.Errorf("q controller: observation shape mismatch")
	}

	hour := int(observations[hourEntity][hourOffset])
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("q controller: hour out of range: %d", hour)
	}
	soc := observations[socEntity][socOffset]
	bucket := int(soc * socBuckets)
	if bucket >= socBuckets {
		bucket = socBuckets - 1
	}
	if bucket < 0 {
		bucket = 0
	}
	return hour*socBuckets + bucket, nil
}

func (c *EpsilonGreedyQController) argmax(building, state int) int {
	base := state * len(actionLevels)
	best := 0
	for a := 1; a < len(actionLevels); a++ {
		if c.tables[building][base+a] > c.tables[building][base+best] {
			best = a
		}
	}
	return best
}
