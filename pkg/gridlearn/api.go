package gridlearn

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridlearn/internal/control"
	"gridlearn/internal/data"
	"gridlearn/internal/district"
	"gridlearn/internal/model"
	"gridlearn/internal/report"
	"gridlearn/internal/sim"
	"gridlearn/internal/storage"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultDBPath       = "gridlearn.db"
	defaultDataset      = "demo-district-4"
	defaultController   = "hour-schedule"
	defaultEpisodes     = 1
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
}

// Client is the public entry point. It owns a result store and an artifacts
// directory; each Run builds a fresh environment and controller.
type Client struct {
	store        storage.Store
	artifactsDir string

	initialized bool
}

type RunRequest struct {
	RunID      string
	Dataset    string
	Controller string
	Episodes   int
	Seed       int64
	Central    bool
	Reward     string
}

type RunResult struct {
	RunID        string
	ArtifactsDir string
	Run          model.Run
	Episodes     []model.EpisodeSummary
	KPIs         []model.KPIRecord
	Table        report.Table
}

type CompareRequest struct {
	Dataset     string
	Controllers []string
	Episodes    int
	Seed        int64
	Central     bool
}

type CompareResult struct {
	Dataset string
	Results []RunResult
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		artifactsDir: artifactsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Datasets lists the built-in datasets.
func (c *Client) Datasets(_ context.Context) ([]model.DatasetSummary, error) {
	names := data.Names()
	out := make([]model.DatasetSummary, 0, len(names))
	for _, name := range names {
		dataset, err := data.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, model.DatasetSummary{
			Name:        dataset.Name,
			Description: dataset.Description,
			Buildings:   len(dataset.Buildings),
			TimeSteps:   dataset.Horizon(),
		})
	}
	return out, nil
}

// Controllers lists the registered controller names.
func (c *Client) Controllers(_ context.Context) ([]string, error) {
	return control.Names(), nil
}

// Run simulates the requested controller on the requested dataset, evaluates
// the final episode against the baseline, and persists the results.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if req.Dataset == "" {
		req.Dataset = defaultDataset
	}
	if req.Controller == "" {
		req.Controller = defaultController
	}
	if req.Episodes <= 0 {
		req.Episodes = defaultEpisodes
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	if err := c.Init(ctx); err != nil {
		return RunResult{}, err
	}

	dataset, err := resolveDataset(req.Dataset)
	if err != nil {
		return RunResult{}, err
	}

	opts := []district.Option{}
	if req.Central {
		opts = append(opts, district.WithCentralAgent())
	}
	if req.Reward != "" {
		rewardFn, err := rewardFromName(req.Reward)
		if err != nil {
			return RunResult{}, err
		}
		opts = append(opts, district.WithReward(rewardFn))
	}
	env, err := district.New(dataset, opts...)
	if err != nil {
		return RunResult{}, err
	}

	controller, err := control.Build(req.Controller, env, req.Seed)
	if err != nil {
		return RunResult{}, err
	}

	runner, err := sim.NewRunner(env, controller, req.RunID)
	if err != nil {
		return RunResult{}, err
	}

	run := model.Run{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:         runner.RunID(),
		Dataset:    req.Dataset,
		Controller: req.Controller,
		Episodes:   req.Episodes,
		Seed:       req.Seed,
		Central:    req.Central,
		StartedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	summaries, err := runner.RunEpisodes(ctx, req.Episodes)
	if err != nil {
		return RunResult{}, err
	}
	kpis := env.Evaluate()
	run.FinishedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunResult{}, err
	}
	if err := c.store.SaveEpisodeSummaries(ctx, run.ID, summaries); err != nil {
		return RunResult{}, err
	}
	if err := c.store.SaveKPIs(ctx, run.ID, kpis); err != nil {
		return RunResult{}, err
	}

	dir, err := report.WriteRunReport(c.artifactsDir, report.RunReport{
		Run:      run,
		Episodes: summaries,
		KPIs:     kpis,
	})
	if err != nil {
		return RunResult{}, err
	}

	return RunResult{
		RunID:        run.ID,
		ArtifactsDir: filepath.Clean(dir),
		Run:          run,
		Episodes:     summaries,
		KPIs:         kpis,
		Table:        report.Pivot(kpis),
	}, nil
}

// Compare runs several controllers over the same dataset with the same seed.
func (c *Client) Compare(ctx context.Context, req CompareRequest) (CompareResult, error) {
	if req.Dataset == "" {
		req.Dataset = defaultDataset
	}
	if len(req.Controllers) == 0 {
		return CompareResult{}, errors.New("compare requires at least one controller")
	}

	results := make([]RunResult, 0, len(req.Controllers))
	for _, name := range req.Controllers {
		result, err := c.Run(ctx, RunRequest{
			Dataset:    req.Dataset,
			Controller: name,
			Episodes:   req.Episodes,
			Seed:       req.Seed,
			Central:    req.Central,
		})
		if err != nil {
			return CompareResult{}, fmt.Errorf("compare controller %s: %w", name, err)
		}
		results = append(results, result)
	}
	return CompareResult{Dataset: req.Dataset, Results: results}, nil
}

// Runs lists persisted runs ordered by start time.
func (c *Client) Runs(ctx context.Context) ([]model.Run, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx)
}

// KPIs returns the persisted KPI records for a run.
func (c *Client) KPIs(ctx context.Context, runID string) ([]model.KPIRecord, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	kpis, ok, err := c.store.GetKPIs(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("kpis not found for run id: %s", runID)
	}
	return kpis, nil
}

// EpisodeSummaries returns the persisted episode summaries for a run.
func (c *Client) EpisodeSummaries(ctx context.Context, runID string) ([]model.EpisodeSummary, error) {
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	summaries, ok, err := c.store.GetEpisodeSummaries(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("episode summaries not found for run id: %s", runID)
	}
	return summaries, nil
}

// Reset clears the store, dropping persisted results on every backend.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.Init(ctx); err != nil {
		return err
	}
	return c.store.Clear(ctx)
}

// resolveDataset treats path-like names as schema files on disk; everything
// else resolves against the built-in registry.
func resolveDataset(name string) (data.Dataset, error) {
	if strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, ".json") {
		return data.LoadSchema(name)
	}
	return data.Lookup(name)
}

func rewardFromName(name string) (district.Function, error) {
	switch name {
	case "consumption":
		return district.NegativeConsumption, nil
	case "price":
		return district.NegativePrice, nil
	case "emission":
		return district.NegativeEmission, nil
	default:
		return nil, fmt.Errorf("unsupported reward function: %s", name)
	}
}
