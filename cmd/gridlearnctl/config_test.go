package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunRequestFromConfig(t *testing.T) {
	path := writeConfig(t, `{
		"run_id": "run-9",
		"dataset": "district-month-2",
		"controller": "q-learning",
		"episodes": 5,
		"seed": 42,
		"central": true,
		"reward": "price"
	}`)

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.RunID != "run-9" || req.Dataset != "district-month-2" || req.Controller != "q-learning" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Episodes != 5 || req.Seed != 42 || !req.Central || req.Reward != "price" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadRunRequestFromConfigPartial(t *testing.T) {
	path := writeConfig(t, `{"dataset": "demo-district-4"}`)

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.Dataset != "demo-district-4" {
		t.Fatalf("dataset = %s", req.Dataset)
	}
	if req.Controller != "" || req.Episodes != 0 {
		t.Fatalf("unset fields should stay zero: %+v", req)
	}
}

func TestLoadRunRequestFromConfigBadJSON(t *testing.T) {
	path := writeConfig(t, `{`)
	if _, err := loadRunRequestFromConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadOrDefaultRunRequestEmptyPath(t *testing.T) {
	req, err := loadOrDefaultRunRequest("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if req.Dataset != "" {
		t.Fatalf("expected a zero request, got %+v", req)
	}
}

func TestOverrideFromFlags(t *testing.T) {
	req, err := loadRunRequestFromConfig(writeConfig(t, `{
		"dataset": "district-month-2",
		"controller": "idle",
		"episodes": 3
	}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	overrideFromFlags(&req,
		map[string]bool{"controller": true, "seed": true},
		map[string]any{
			"controller": "q-learning",
			"episodes":   9,
			"seed":       int64(5),
		})

	if req.Controller != "q-learning" {
		t.Fatalf("controller = %s, want q-learning", req.Controller)
	}
	if req.Seed != 5 {
		t.Fatalf("seed = %d, want 5", req.Seed)
	}
	if req.Episodes != 3 {
		t.Fatalf("episodes should keep the config value, got %d", req.Episodes)
	}
	if req.Dataset != "district-month-2" {
		t.Fatalf("dataset should keep the config value, got %s", req.Dataset)
	}
}
