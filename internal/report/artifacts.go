package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridlearn/internal/model"
)

const reportsDir = "reports"

// RunReport bundles everything a finished run produced.
type RunReport struct {
	Run         model.Run              `json:"run"`
	GeneratedAt string                 `json:"generated_at_utc"`
	Episodes    []model.EpisodeSummary `json:"episodes"`
	KPIs        []model.KPIRecord      `json:"kpis"`
}

// WriteRunReport writes the run's artifact files under
// <baseDir>/reports/<run id>/ and returns the directory.
func WriteRunReport(baseDir string, report RunReport) (string, error) {
	if report.Run.ID == "" {
		return "", fmt.Errorf("report run id is required")
	}
	dir := filepath.Join(baseDir, reportsDir, report.Run.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if report.GeneratedAt == "" {
		report.GeneratedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if err := writeJSON(filepath.Join(dir, "run_Episodes.json"), report.Episodes); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "run_KPIs.json"), report.KPIs); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "run_Report.json"), report); err != nil {
		return "", err
	}
	return dir, nil
}

// ReadRunReport reads a previously written report.
func ReadRunReport(baseDir, runID string) (RunReport, bool, error) {
	if runID == "" {
		return RunReport{}, false, fmt.Errorf("run id is required")
	}
	path := filepath.Join(baseDir, reportsDir, runID, "run_Report.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunReport{}, false, nil
		}
		return RunReport{}, false, err
	}
	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return RunReport{}, false, err
	}
	return report, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
