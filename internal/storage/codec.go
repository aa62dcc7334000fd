package storage

import (
	"encoding/json"
	"errors"

	"gridlearn/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(run model.Run) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeRun(data []byte) (model.Run, error) {
	var run model.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return model.Run{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

func EncodeEpisodeSummaries(summaries []model.EpisodeSummary) ([]byte, error) {
	return json.Marshal(summaries)
}

func DecodeEpisodeSummaries(data []byte) ([]model.EpisodeSummary, error) {
	var summaries []model.EpisodeSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func EncodeKPIs(kpis []model.KPIRecord) ([]byte, error) {
	return json.Marshal(kpis)
}

func DecodeKPIs(data []byte) ([]model.KPIRecord, error) {
	var kpis []model.KPIRecord
	if err := json.Unmarshal(data, &kpis); err != nil {
		return nil, err
	}
	return kpis, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
