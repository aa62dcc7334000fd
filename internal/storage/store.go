package storage

import (
	"context"
	"sort"

	"gridlearn/internal/model"
)

// Store defines persistence operations for runs and their results.
type Store interface {
	Init(ctx context.Context) error
	Clear(ctx context.Context) error
	SaveRun(ctx context.Context, run model.Run) error
	GetRun(ctx context.Context, id string) (model.Run, bool, error)
	ListRuns(ctx context.Context) ([]model.Run, error)
	SaveEpisodeSummaries(ctx context.Context, runID string, summaries []model.EpisodeSummary) error
	GetEpisodeSummaries(ctx context.Context, runID string) ([]model.EpisodeSummary, bool, error)
	SaveKPIs(ctx context.Context, runID string, kpis []model.KPIRecord) error
	GetKPIs(ctx context.Context, runID string) ([]model.KPIRecord, bool, error)
}

func sortRuns(runs []model.Run) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt == runs[j].StartedAt {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt < runs[j].StartedAt
	})
}
