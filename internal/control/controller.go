package control

import (
	"context"
	"fmt"

	"gridlearn/internal/district"
)

// Controller maps observations to one action vector per building.
type Controller interface {
	ID() string
	Predict(ctx context.Context, observations [][]float64) ([][]float64, error)
}

// EpisodeStarter is implemented by controllers that adjust per episode, e.g.
// exploration decay. The runner calls it before each episode.
type EpisodeStarter interface {
	StartEpisode(episode int)
}

// Updater is implemented by controllers that learn from experience. The
// runner calls it after every environment step.
type Updater interface {
	Update(ctx context.Context, observations, actions [][]float64, rewards []float64, next [][]float64, done bool) error
}

// observationIndex locates a named observation inside each entity's vector.
// For central districts the flattened vector is addressed by
// "<building>.<name>" entries.
func observationIndex(env *district.District, name string) ([][2]int, error) {
	names := env.ObservationNames()
	buildings := env.Buildings()

	indexes := make([][2]int, 0, len(buildings))
	if env.Central() {
		flat := names[0]
		for _, b := range buildings {
			wanted := b.Name() + "." + name
			found := false
			for i, candidate := range flat {
				if candidate == wanted {
					indexes = append(indexes, [2]int{0, i})
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("observation %s is not active for building %s", name, b.Name())
			}
		}
		return indexes, nil
	}

	for entity, entityNames := range names {
		found := false
		for i, candidate := range entityNames {
			if candidate == name {
				indexes = append(indexes, [2]int{entity, i})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("observation %s is not active for building %s", name, buildings[entity].Name())
		}
	}
	return indexes, nil
}
