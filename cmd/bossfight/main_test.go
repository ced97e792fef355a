package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/petstore/bossfight/internal/config"
	"github.com/petstore/bossfight/internal/data"
)

func TestDisplayWidth(t *testing.T) {
	if displayWidth("abc") != 3 || displayWidth("結果") != 4 || displayWidth("Boss 生命值") != 11 {
		t.Fatal("width mismatch")
	}
}

func TestRunBatchCollectsEveryRun(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Batch = 6
	cfg.Sim.Workers = 3
	cfg.Sim.Duration = 5 * time.Second
	cfg.Scripts.Bot = false

	report, err := runBatch(context.Background(), cfg, data.DefaultTuning(), 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if report.Runs != 6 || len(report.Results) != 6 {
		t.Fatalf("runs = %d results = %d", report.Runs, len(report.Results))
	}
	sum := 0
	for _, n := range report.Outcomes {
		sum += n
	}
	if sum != 6 {
		t.Errorf("outcomes = %v", report.Outcomes)
	}
	for i, r := range report.Results {
		if r.Seed != int64(1+i) {
			t.Errorf("result %d has seed %d", i, r.Seed)
		}
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back["runs"].(float64) != 6 {
		t.Errorf("json runs = %v", back["runs"])
	}
}

func TestLoadConfigFallsBackOnlyForDefaultPath(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("explicit missing path accepted")
	}
}
