package control

import (
	"context"
	"math"
	"testing"
)

func qObservations(buildings int, hour int, soc float64) [][]float64 {
	obs := make([][]float64, buildings)
	for i := range obs {
		vector := make([]float64, 12)
		vector[1] = float64(hour) // matches the default observation order
		vector[8] = soc
		obs[i] = vector
	}
	return obs
}

func TestQControllerUpdateMovesTowardReward(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t)
	controller, err := NewEpsilonGreedyQController(env, 7)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	obs := qObservations(4, 5, 0)
	next := qObservations(4, 6, 0.1)
	rewards := []float64{-2, -2, -2, -2}

	if err := controller.Update(ctx, obs, nil, rewards, next, true); err != nil {
		t.Fatalf("update: %v", err)
	}

	// One terminal update from a zero table: Q += alpha * reward.
	got := controller.Q(0, 5, 0, 0)
	want := defaultAlpha * -2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("q value = %v, want %v", got, want)
	}
	if untouched := controller.Q(0, 6, 0, 0); untouched != 0 {
		t.Fatalf("next state should be untouched on terminal update, got %v", untouched)
	}
}

func TestQControllerEpsilonDecay(t *testing.T) {
	env := testEnv(t)
	controller, err := NewEpsilonGreedyQController(env, 7)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	controller.StartEpisode(1)
	if controller.Epsilon() != defaultEpsilon {
		t.Fatalf("episode 1 should keep epsilon, got %v", controller.Epsilon())
	}
	controller.StartEpisode(2)
	if math.Abs(controller.Epsilon()-defaultEpsilon*epsilonDecay) > 1e-12 {
		t.Fatalf("epsilon after decay = %v", controller.Epsilon())
	}
	for episode := 3; episode < 100; episode++ {
		controller.StartEpisode(episode)
	}
	if controller.Epsilon() < minEpsilon {
		t.Fatalf("epsilon below floor: %v", controller.Epsilon())
	}
}

func TestQControllerPredictShape(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t)
	controller, err := NewEpsilonGreedyQController(env, 7)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	obs, err := env.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	actions, err := controller.Predict(ctx, obs)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(actions) != 4 {
		t.Fatalf("actions = %d vectors, want 4", len(actions))
	}
	for i, action := range actions {
		if len(action) != 1 || action[0] < -1 || action[0] > 1 {
			t.Fatalf("building %d action out of range: %v", i, action)
		}
	}
}

func TestQControllerLearnsOverEpisodes(t *testing.T) {
	ctx := context.Background()
	env := testEnv(t)
	controller, err := NewEpsilonGreedyQController(env, 7)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	for episode := 1; episode <= 2; episode++ {
		controller.StartEpisode(episode)
		obs, err := env.Reset(ctx)
		if err != nil {
			t.Fatalf("reset: %v", err)
		}
		for !env.Done() {
			actions, err := controller.Predict(ctx, obs)
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			next, rewards, done, err := env.Step(ctx, actions)
			if err != nil {
				t.Fatalf("step: %v", err)
			}
			if err := controller.Update(ctx, obs, actions, rewards, next, done); err != nil {
				t.Fatalf("update: %v", err)
			}
			obs = next
		}
	}

	// Negative step rewards must have pushed some values below zero.
	nonZero := false
	for hour := 0; hour < 24 && !nonZero; hour++ {
		for bucket := 0; bucket < socBuckets && !nonZero; bucket++ {
			for action := 0; action < len(actionLevels); action++ {
				if controller.Q(0, hour, bucket, action) != 0 {
					nonZero = true
					break
				}
			}
		}
	}
	if !nonZero {
		t.Fatal("expected the table to change after two episodes")
	}
}
