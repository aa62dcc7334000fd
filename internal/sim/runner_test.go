package sim

import (
	"context"
	"math"
	"testing"

	"gridlearn/internal/control"
	"gridlearn/internal/data"
	"gridlearn/internal/district"
)

func testEnvAndController(t *testing.T, controllerName string) (*district.District, control.Controller) {
	t.Helper()
	dataset, err := data.Lookup("demo-district-4")
	if err != nil {
		t.Fatalf("lookup dataset: %v", err)
	}
	env, err := district.New(dataset)
	if err != nil {
		t.Fatalf("new district: %v", err)
	}
	controller, err := control.Build(controllerName, env, 1)
	if err != nil {
		t.Fatalf("build controller: %v", err)
	}
	return env, controller
}

func TestRunnerRequiresEnvAndController(t *testing.T) {
	env, controller := testEnvAndController(t, "idle")
	if _, err := NewRunner(nil, controller, ""); err == nil {
		t.Fatal("expected an error without an environment")
	}
	if _, err := NewRunner(env, nil, ""); err == nil {
		t.Fatal("expected an error without a controller")
	}
}

func TestRunnerGeneratesRunID(t *testing.T) {
	env, controller := testEnvAndController(t, "idle")
	runner, err := NewRunner(env, controller, "")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if runner.RunID() == "" {
		t.Fatal("expected a generated run id")
	}

	named, err := NewRunner(env, controller, "run-7")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if named.RunID() != "run-7" {
		t.Fatalf("run id = %s, want run-7", named.RunID())
	}
}

func TestRunnerEpisodeSummaries(t *testing.T) {
	env, controller := testEnvAndController(t, "idle")
	runner, err := NewRunner(env, controller, "run-1")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	summaries, err := runner.RunEpisodes(context.Background(), 2)
	if err != nil {
		t.Fatalf("run episodes: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	for i, summary := range summaries {
		if summary.Episode != i+1 {
			t.Fatalf("episode number = %d, want %d", summary.Episode, i+1)
		}
		if summary.Steps != env.Horizon()-1 {
			t.Fatalf("episode steps = %d, want %d", summary.Steps, env.Horizon()-1)
		}
		if summary.TotalReward > 0 {
			t.Fatalf("total reward = %v, want <= 0", summary.TotalReward)
		}
		if math.Abs(summary.MeanReward*float64(summary.Steps)-summary.TotalReward) > 1e-9 {
			t.Fatalf("mean reward inconsistent: %v * %d != %v", summary.MeanReward, summary.Steps, summary.TotalReward)
		}
	}
	if !env.Done() {
		t.Fatal("environment should be left at the end of the final episode")
	}
}

func TestRunnerRejectsNonPositiveEpisodes(t *testing.T) {
	env, controller := testEnvAndController(t, "idle")
	runner, err := NewRunner(env, controller, "run-1")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.RunEpisodes(context.Background(), 0); err == nil {
		t.Fatal("expected an error for zero episodes")
	}
}

func TestRunnerHonorsContextCancellation(t *testing.T) {
	env, controller := testEnvAndController(t, "idle")
	runner, err := NewRunner(env, controller, "run-1")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.RunEpisodes(ctx, 1); err == nil {
		t.Fatal("expected a context error")
	}
}

func TestRunnerDrivesLearningController(t *testing.T) {
	env, controller := testEnvAndController(t, "q-learning")
	runner, err := NewRunner(env, controller, "run-q")
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	summaries, err := runner.RunEpisodes(context.Background(), 3)
	if err != nil {
		t.Fatalf("run episodes: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("summaries = %d, want 3", len(summaries))
	}

	learner, ok := controller.(*control.EpsilonGreedyQController)
	if !ok {
		t.Fatal("expected a q-learning controller")
	}
	if learner.Epsilon() >= 0.3 {
		t.Fatalf("exploration should decay across episodes, epsilon = %v", learner.Epsilon())
	}
}
