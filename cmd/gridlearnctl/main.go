package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"gridlearn/internal/report"
	"gridlearn/internal/storage"
	gridapi "gridlearn/pkg/gridlearn"
)

const artifactsDir = "artifacts"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "datasets":
		return runDatasets(ctx, args[1:])
	case "controllers":
		return runControllers(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "compare":
		return runCompare(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "kpis":
		return runKPIs(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: gridlearnctl <init|reset|datasets|controllers|run|compare|runs|kpis> [flags]", msg)
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runDatasets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("datasets", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit dataset list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gridapi.New(gridapi.Options{ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	datasets, err := client.Datasets(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(datasets)
	}

	for _, d := range datasets {
		fmt.Printf("dataset=%s buildings=%d time_steps=%s description=%q\n",
			d.Name,
			d.Buildings,
			humanize.Comma(int64(d.TimeSteps)),
			d.Description,
		)
	}
	return nil
}

func runControllers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("controllers", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := gridapi.New(gridapi.Options{ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	controllers, err := client.Controllers(ctx)
	if err != nil {
		return err
	}
	for _, name := range controllers {
		fmt.Println(name)
	}
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	dataset := fs.String("dataset", "demo-district-4", "dataset name or schema file path")
	controller := fs.String("controller", "hour-schedule", "controller name")
	episodes := fs.Int("episodes", 1, "episode count")
	seed := fs.Int64("seed", 1, "rng seed")
	central := fs.Bool("central", false, "single central agent over the whole district")
	reward := fs.String("reward", "", "reward function: consumption|price|emission")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = gridapi.RunRequest{
			RunID:      *runID,
			Dataset:    *dataset,
			Controller: *controller,
			Episodes:   *episodes,
			Seed:       *seed,
			Central:    *central,
			Reward:     *reward,
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"run-id":     *runID,
			"dataset":    *dataset,
			"controller": *controller,
			"episodes":   *episodes,
			"seed":       *seed,
			"central":    *central,
			"reward":     *reward,
		})
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	result, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	printRunResult(result)
	return nil
}

func runCompare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	dataset := fs.String("dataset", "demo-district-4", "dataset name or schema file path")
	controllers := fs.String("controllers", "idle,random,hour-schedule,q-learning", "comma-separated controller names")
	episodes := fs.Int("episodes", 1, "episode count per controller")
	seed := fs.Int64("seed", 1, "rng seed shared by all controllers")
	central := fs.Bool("central", false, "single central agent over the whole district")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names := splitControllerNames(*controllers)
	if len(names) == 0 {
		return errors.New("compare requires -controllers")
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	compared, err := client.Compare(ctx, gridapi.CompareRequest{
		Dataset:     *dataset,
		Controllers: names,
		Episodes:    *episodes,
		Seed:        *seed,
		Central:     *central,
	})
	if err != nil {
		return err
	}

	for _, result := range compared.Results {
		fmt.Printf("controller=%s\n", result.Run.Controller)
		printRunResult(result)
		fmt.Println()
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if len(runs) > *limit {
		runs = runs[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, r := range runs {
		fmt.Printf("run_id=%s started_at=%s dataset=%s controller=%s episodes=%d seed=%d central=%t\n",
			r.ID,
			r.StartedAt,
			r.Dataset,
			r.Controller,
			r.Episodes,
			r.Seed,
			r.Central,
		)
	}
	return nil
}

func runKPIs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kpis", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	jsonOut := fs.Bool("json", false, "emit KPI records as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "gridlearn.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("kpis requires -run-id")
	}

	client, err := gridapi.New(gridapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	kpis, err := client.KPIs(ctx, *runID)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(kpis)
	}

	fmt.Print(report.Format(report.Pivot(kpis)))
	return nil
}

func printRunResult(result gridapi.RunResult) {
	fmt.Printf("run completed run_id=%s dataset=%s controller=%s episodes=%d seed=%d\n",
		result.RunID,
		result.Run.Dataset,
		result.Run.Controller,
		result.Run.Episodes,
		result.Run.Seed,
	)
	for _, summary := range result.Episodes {
		fmt.Printf("episode=%d steps=%s total_reward=%.4f mean_reward=%.6f\n",
			summary.Episode,
			humanize.Comma(int64(summary.Steps)),
			summary.TotalReward,
			summary.MeanReward,
		)
	}
	fmt.Print(report.Format(result.Table))
	fmt.Printf("artifacts_dir=%s\n", result.ArtifactsDir)
}

func splitControllerNames(value string) []string {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
