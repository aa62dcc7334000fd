package main

import (
	"encoding/json"
	"fmt"
	"os"

	gridapi "gridlearn/pkg/gridlearn"
)

func loadRunRequestFromConfig(path string) (gridapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gridapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return gridapi.RunRequest{}, err
	}

	var req gridapi.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["dataset"]); ok {
		req.Dataset = v
	}
	if v, ok := asString(raw["controller"]); ok {
		req.Controller = v
	}
	if v, ok := asInt(raw["episodes"]); ok {
		req.Episodes = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asBool(raw["central"]); ok {
		req.Central = v
	}
	if v, ok := asString(raw["reward"]); ok {
		req.Reward = v
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (gridapi.RunRequest, error) {
	if configPath == "" {
		return gridapi.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return gridapi.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func overrideFromFlags(req *gridapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "run-id":
			req.RunID = v.(string)
		case "dataset":
			req.Dataset = v.(string)
		case "controller":
			req.Controller = v.(string)
		case "episodes":
			req.Episodes = v.(int)
		case "seed":
			req.Seed = v.(int64)
		case "central":
			req.Central = v.(bool)
		case "reward":
			req.Reward = v.(string)
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}
