package model

import (
	"encoding/json"
	"math"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type Run struct {
	VersionedRecord
	ID         string `json:"id"`
	Dataset    string `json:"dataset"`
	Controller string `json:"controller"`
	Episodes   int    `json:"episodes"`
	Seed       int64  `json:"seed"`
	Central    bool   `json:"central,omitempty"`
	StartedAt  string `json:"started_at_utc,omitempty"`
	FinishedAt string `json:"finished_at_utc,omitempty"`
}

type EpisodeSummary struct {
	Episode     int     `json:"episode"`
	Steps       int     `json:"steps"`
	TotalReward float64 `json:"total_reward"`
	MeanReward  float64 `json:"mean_reward"`
}

// KPIRecord is one cell of the evaluation result: a cost function scored for
// one entity (a building or the whole district). Values are ratios of the
// controlled series against the no-flexibility baseline.
type KPIRecord struct {
	Name   string  `json:"cost_function"`
	Entity string  `json:"entity"`
	Value  float64 `json:"value"`
}

// kpiRecordJSON mirrors KPIRecord with a nullable value so NaN survives the
// JSON round trip. Several cost functions are undefined for buildings or for
// horizons shorter than their window.
type kpiRecordJSON struct {
	Name   string   `json:"cost_function"`
	Entity string   `json:"entity"`
	Value  *float64 `json:"value"`
}

func (r KPIRecord) MarshalJSON() ([]byte, error) {
	out := kpiRecordJSON{Name: r.Name, Entity: r.Entity}
	if !math.IsNaN(r.Value) {
		value := r.Value
		out.Value = &value
	}
	return json.Marshal(out)
}

func (r *KPIRecord) UnmarshalJSON(data []byte) error {
	var in kpiRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Name = in.Name
	r.Entity = in.Entity
	if in.Value == nil {
		r.Value = math.NaN()
	} else {
		r.Value = *in.Value
	}
	return nil
}

type DatasetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Buildings   int    `json:"buildings"`
	TimeSteps   int    `json:"time_steps"`
}
