package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gridlearn/internal/control"
	"gridlearn/internal/district"
	"gridlearn/internal/model"
)

// Runner drives sequential episodes of one controller against one district.
// Controllers that implement the optional control.Updater and
// control.EpisodeStarter interfaces learn as the episodes run.
type Runner struct {
	env        *district.District
	controller control.Controller
	runID      string
}

func NewRunner(env *district.District, controller control.Controller, runID string) (*Runner, error) {
	if env == nil {
		return nil, fmt.Errorf("runner requires an environment")
	}
	if controller == nil {
		return nil, fmt.Errorf("runner requires a controller")
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Runner{env: env, controller: controller, runID: runID}, nil
}

func (r *Runner) RunID() string { return r.runID }

// RunEpisodes executes the requested number of episodes and returns one
// summary per episode. The environment is left at the end of the final
// episode so it can be evaluated.
func (r *Runner) RunEpisodes(ctx context.Context, episodes int) ([]model.EpisodeSummary, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("episodes must be > 0, got %d", episodes)
	}

	starter, _ := r.controller.(control.EpisodeStarter)
	updater, _ := r.controller.(control.Updater)

	summaries := make([]model.EpisodeSummary, 0, episodes)
	for episode := 1; episode <= episodes; episode++ {
		if starter != nil {
			starter.StartEpisode(episode)
		}
		summary, err := r.runEpisode(ctx, episode, updater)
		if err != nil {
			return nil, fmt.Errorf("run %s episode %d: %w", r.runID, episode, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *Runner) runEpisode(ctx context.Context, episode int, updater control.Updater) (model.EpisodeSummary, error) {
	observations, err := r.env.Reset(ctx)
	if err != nil {
		return model.EpisodeSummary{}, err
	}

	steps := 0
	totalReward := 0.0
	for {
		if err := ctx.Err(); err != nil {
			return model.EpisodeSummary{}, err
		}
		actions, err := r.controller.Predict(ctx, observations)
		if err != nil {
			return model.EpisodeSummary{}, err
		}
		next, rewards, done, err := r.env.Step(ctx, actions)
		if err != nil {
			return model.EpisodeSummary{}, err
		}
		if updater != nil {
			if err := updater.Update(ctx, observations, actions, rewards, next, done); err != nil {
				return model.EpisodeSummary{}, err
			}
		}

		steps++
		for _, reward := range rewards {
			totalReward += reward
		}
		observations = next
		if done {
			break
		}
	}

	summary := model.EpisodeSummary{
		Episode:     episode,
		Steps:       steps,
		TotalReward: totalReward,
	}
	if steps > 0 {
		summary.MeanReward = totalReward / float64(steps)
	}
	return summary, nil
}
