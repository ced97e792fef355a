package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "bossfight.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := write(t, `
[sim]
frame_rate = 30
fixed_step = "10ms"
seed = 42
duration = "90s"

[logging]
level = "debug"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.FrameRate != 30 || cfg.Sim.FixedStep != 10*time.Millisecond || cfg.Sim.Seed != 42 {
		t.Errorf("sim = %+v", cfg.Sim)
	}
	if cfg.Sim.Duration != 90*time.Second {
		t.Errorf("duration = %v", cfg.Sim.Duration)
	}
	if cfg.Sim.Frame() != time.Second/30 {
		t.Errorf("frame = %v", cfg.Sim.Frame())
	}
	// untouched sections keep defaults
	if cfg.Data.Boss != "data/boss.yaml" || cfg.Logging.Format != "console" || cfg.Logging.Level != "debug" {
		t.Errorf("data = %+v logging = %+v", cfg.Data, cfg.Logging)
	}
	if cfg.Server.StartTime == 0 {
		t.Error("start time not stamped")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	p := write(t, `
[sim]
frame_rate = 0
batch = 0

[logging]
format = "xml"
`)
	_, err := Load(p)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"frame_rate", "batch", "logging.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestBundledConfigLoads(t *testing.T) {
	cfg, err := Load("../../config/bossfight.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.FixedStep != 20*time.Millisecond || cfg.Sim.Duration != 3*time.Minute || !cfg.Scripts.Bot {
		t.Errorf("cfg = %+v", cfg.Sim)
	}
}
