package storage

import (
	"context"
	"sync"

	"gridlearn/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]model.Run
	summaries map[string][]model.EpisodeSummary
	kpis      map[string][]model.KPIRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.Run)
	s.summaries = make(map[string][]model.EpisodeSummary)
	s.kpis = make(map[string][]model.KPIRecord)
	return nil
}

// Clear drops every stored record. The store stays usable afterwards.
func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sortRuns(runs)
	return runs, nil
}

func (s *MemoryStore) SaveEpisodeSummaries(_ context.Context, runID string, summaries []model.EpisodeSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.EpisodeSummary, len(summaries))
	copy(copied, summaries)
	s.summaries[runID] = copied
	return nil
}

func (s *MemoryStore) GetEpisodeSummaries(_ context.Context, runID string) ([]model.EpisodeSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries, ok := s.summaries[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.EpisodeSummary, len(summaries))
	copy(copied, summaries)
	return copied, true, nil
}

func (s *MemoryStore) SaveKPIs(_ context.Context, runID string, kpis []model.KPIRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.KPIRecord, len(kpis))
	copy(copied, kpis)
	s.kpis[runID] = copied
	return nil
}

func (s *MemoryStore) GetKPIs(_ context.Context, runID string) ([]model.KPIRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kpis, ok := s.kpis[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.KPIRecord, len(kpis))
	copy(copied, kpis)
	return copied, true, nil
}
